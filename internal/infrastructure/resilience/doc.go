/*
Package resilience provides a circuit breaker for calls to unreliable upstreams.

The intent resolver wraps every language-model request in a Breaker. After
MaxFailures consecutive failures the breaker opens and calls fail immediately
with ErrCircuitOpen until Cooldown elapses. The next call is a probe: success
closes the breaker, failure reopens it.

	breaker := resilience.New("ollama", resilience.Settings{
		MaxFailures: 5,
		Cooldown:    30 * time.Second,
	})

	err := breaker.Do(ctx, func(ctx context.Context) error {
		return client.Chat(ctx, req)
	})

	Closed --[failures]-> Open --[cooldown]-> Half-Open --[success]-> Closed
	                                             |
	                                         [failure]
	                                             v
	                                            Open
*/
package resilience
