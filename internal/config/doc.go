// Package config provides configuration management for the render worker.
//
// Configuration is read from environment variables with caarlos0/env and
// validated before the worker starts:
//
//	WORKER_ID       consumer name inside the group      (render-1)
//	REDIS_ADDR      redis address                       (localhost:6379)
//	REDIS_PASS      redis password                      ("")
//	REDIS_DB        redis database                      (0)
//	STREAM_KEY      stream carrying render requests     (render.work)
//	CONSUMER_GROUP  consumer group                      (render-workers)
//	RESULT_STREAM   stream receiving render results     (render.done)
//	BLOCK_TIME      XREADGROUP block time               (1s)
//	CEL_ENABLED     accept selection-rule requests      (true)
//	TEMPLATE_TTL    expiry for templates saved by tools (0s, no expiry)
//	HEALTH_PORT     health server port                  (8083)
//	LOG_LEVEL       debug, info, warn or error          (info)
//
// Example usage:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg)
package config
