// Package ws serves the /api/stream WebSocket.
//
// Clients send JSON messages of type "chat", "execute" or "ping" over one
// connection. Chat replies carry the same fields as POST /api/chat; execute
// replies wrap the operation envelope together with the HTTP status the
// REST endpoint would have used.
//
//	-> {"type":"chat","message":"largest files","context":{"directory":"/data"}}
//	<- {"type":"chat","response":"I'll execute: largest_files","action_info":{...}}
//	-> {"type":"execute","action":"largest_files","params":{"limit":5}}
//	<- {"type":"result","action":"largest_files","status":200,"result":{...}}
package ws
