// Package worker implements the render worker lifecycle and Redis Streams integration.
//
// The worker subscribes to Redis Streams for render requests, resolves the
// template (inline source, stored name, or CEL selection rules), renders it
// with the Handlebars engine and publishes the output back.
//
// Example usage:
//
//	cfg, _ := config.Load()
//	redisClient := redis.NewClient(&redis.Options{...})
//	engine := template.NewEngine(template.WithLogger(logger))
//	templates := store.NewRedisTemplateStore(redisClient, logger)
//
//	worker := worker.NewWorker(cfg, redisClient, engine, selector.NewSelector(logger), templates, logger)
//	if err := worker.Start(); err != nil {
//	    log.Fatal(err)
//	}
//	defer worker.Stop()
//
// A render request is a JSON document in the `data` field of a stream entry:
//
//	{"request_id": "r-1", "template": "{{#if vip}}Hi {{name}}{{/if}}", "data": {"vip": true, "name": "Ada"}}
//	{"template": "...", "store_as": "welcome", "data": {...}}
//	{"template_name": "welcome", "data": {...}}
//	{"selection": {"rules": [{"condition": "data.locale == 'es'", "template": "welcome_es"}], "fallback": "welcome"}, "data": {...}}
//
// Results go to the result stream; failures go to the result stream with an
// ".errors" suffix. Output of a failed render is never published.
//
// Health checks are provided via a separate HTTP server:
//
//	healthServer := worker.NewHealthServer(8083, redisClient, engine, logger)
//	healthServer.Start()
//	defer healthServer.Stop()
package worker
