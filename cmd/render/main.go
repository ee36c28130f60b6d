// Command render renders a Handlebars template file against a YAML or JSON
// data file, or stores the template in Redis for the render worker.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/aescanero/dago-node-render/internal/eval/template"
	"github.com/aescanero/dago-node-render/internal/logging"
	"github.com/aescanero/dago-node-render/internal/store"
	"github.com/aescanero/dago-node-render/internal/value"
)

func main() {
	templatePath := flag.String("template", "", "template file to render (required)")
	dataPath := flag.String("data", "", "YAML or JSON data file")
	output := flag.String("output", "", "output file (stdout if empty)")
	logLevel := flag.String("log-level", "warn", "log level: debug, info, warn, error")
	saveAs := flag.String("save-as", "", "store the template in redis under this name instead of rendering")
	redisAddr := flag.String("redis", "localhost:6379", "redis address used with -save-as")
	ttl := flag.Duration("ttl", 0, "expiry of the stored template, 0 keeps it forever")
	flag.Parse()

	if *templatePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	logger, err := logging.NewStderr(*logLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	source, err := os.ReadFile(*templatePath)
	if err != nil {
		log.Fatalf("Failed to read template: %v", err)
	}

	engine := template.NewEngine(template.WithLogger(logger))
	if err := engine.ValidateTemplate(string(source)); err != nil {
		log.Fatalf("Invalid template: %v", err)
	}

	if *saveAs != "" {
		if err := save(*redisAddr, *saveAs, string(source), *ttl, logger); err != nil {
			log.Fatalf("Failed to store template: %v", err)
		}
		fmt.Printf("Template stored as %s\n", *saveAs)
		return
	}

	data, err := loadData(*dataPath)
	if err != nil {
		log.Fatalf("Failed to load data: %v", err)
	}

	result, err := engine.RenderValue(string(source), data)
	if err != nil {
		log.Fatalf("Failed to render: %v", err)
	}

	if *output != "" {
		if err := os.WriteFile(*output, []byte(result), 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		logger.Info("output written", zap.String("path", *output))
		return
	}
	fmt.Print(result)
}

// loadData reads a YAML (or JSON) document into a dynamic value.
// An empty path renders against an empty object.
func loadData(path string) (value.Value, error) {
	if path == "" {
		return value.Object(nil), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return value.Null(), err
	}

	var data interface{}
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return value.Null(), fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return value.FromGo(data), nil
}

func save(addr, name, source string, ttl time.Duration, logger *zap.Logger) error {
	client := redis.NewClient(&redis.Options{Addr: addr})
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return store.NewRedisTemplateStore(client, logger).Save(ctx, name, source, ttl)
}
