// Command fileagent is the command-line front end to the file operations
// and the intent resolver.
//
// Usage:
//
//	fileagent ops
//	fileagent exec largest_files directory=~/Downloads limit=5
//	fileagent ask --run "move all screenshots to Pictures/Screens"
//	fileagent serve --port 5001
//
// Configuration follows the server: environment variables, an optional
// --config file, then flags.
package main
