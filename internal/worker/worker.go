package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/aescanero/dago-node-render/internal/config"
	"github.com/aescanero/dago-node-render/internal/eval/template"
	"github.com/aescanero/dago-node-render/internal/selector"
)

// Worker represents the render worker
type Worker struct {
	id            string
	config        *config.Config
	redisClient   *redis.Client
	processor     *Processor
	logger        *zap.Logger
	ctx           context.Context
	cancel        context.CancelFunc
	done          chan struct{}
	streamKey     string
	consumerGroup string
	resultStream  string
}

// NewWorker creates a new worker. Selection requests are rejected when
// cfg.CELEnabled is false.
func NewWorker(
	cfg *config.Config,
	redisClient *redis.Client,
	engine *template.Engine,
	sel *selector.Selector,
	templates TemplateStore,
	logger *zap.Logger,
) *Worker {
	ctx, cancel := context.WithCancel(context.Background())

	if !cfg.CELEnabled {
		sel = nil
	}

	return &Worker{
		id:            cfg.WorkerID,
		config:        cfg,
		redisClient:   redisClient,
		processor:     NewProcessor(engine, sel, templates, cfg.TemplateTTL, logger),
		logger:        logger,
		ctx:           ctx,
		cancel:        cancel,
		done:          make(chan struct{}),
		streamKey:     cfg.StreamKey,
		consumerGroup: cfg.ConsumerGroup,
		resultStream:  cfg.ResultStream,
	}
}

// Start starts the worker
func (w *Worker) Start() error {
	w.logger.Info("starting render worker",
		zap.String("worker_id", w.id),
		zap.String("stream_key", w.streamKey),
		zap.String("consumer_group", w.consumerGroup),
	)

	// Create consumer group if it doesn't exist
	if err := w.ensureConsumerGroup(); err != nil {
		return fmt.Errorf("failed to ensure consumer group: %w", err)
	}

	// Start processing work
	go w.processWork()

	w.logger.Info("render worker started", zap.String("worker_id", w.id))
	return nil
}

// Stop stops the worker and waits for the in-flight request
func (w *Worker) Stop(ctx context.Context) error {
	w.logger.Info("stopping render worker", zap.String("worker_id", w.id))

	// Cancel context to stop work processing
	w.cancel()

	// Wait for the loop to finish its current message
	select {
	case <-w.done:
	case <-ctx.Done():
		return fmt.Errorf("worker did not stop: %w", ctx.Err())
	}

	w.logger.Info("render worker stopped", zap.String("worker_id", w.id))
	return nil
}

// ensureConsumerGroup creates the consumer group if it doesn't exist
func (w *Worker) ensureConsumerGroup() error {
	// Try to create the group
	err := w.redisClient.XGroupCreateMkStream(w.ctx, w.streamKey, w.consumerGroup, "0").Err()
	if err != nil {
		// BUSYGROUP error means the group already exists, which is fine
		if strings.HasPrefix(err.Error(), "BUSYGROUP") {
			w.logger.Debug("consumer group already exists",
				zap.String("group", w.consumerGroup),
			)
			return nil
		}
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	w.logger.Info("created consumer group",
		zap.String("group", w.consumerGroup),
		zap.String("stream", w.streamKey),
	)
	return nil
}

// processWork processes work from the Redis stream
func (w *Worker) processWork() {
	defer close(w.done)
	w.logger.Info("starting work processing loop")

	for {
		select {
		case <-w.ctx.Done():
			w.logger.Info("work processing loop stopped")
			return
		default:
			// Read from stream
			streams, err := w.redisClient.XReadGroup(w.ctx, &redis.XReadGroupArgs{
				Group:    w.consumerGroup,
				Consumer: w.id,
				Streams:  []string{w.streamKey, ">"},
				Count:    1,
				Block:    w.config.BlockTime,
			}).Result()

			if err != nil {
				if errors.Is(err, redis.Nil) || w.ctx.Err() != nil {
					// No messages available, or shutting down
					continue
				}
				w.logger.Error("failed to read from stream",
					zap.Error(err),
				)
				time.Sleep(time.Second)
				continue
			}

			// Process each message
			for _, stream := range streams {
				for _, message := range stream.Messages {
					w.handleMessage(message)
				}
			}
		}
	}
}

// handleMessage handles a single render request message
func (w *Worker) handleMessage(message redis.XMessage) {
	messageID := message.ID
	w.logger.Info("processing render request",
		zap.String("message_id", messageID),
	)

	// Parse the render request
	request, err := parseRenderRequest(message.Values)
	if err != nil {
		w.logger.Error("failed to parse render request",
			zap.String("message_id", messageID),
			zap.Error(err),
		)
		w.acknowledgeMessage(messageID)
		return
	}

	// Render, then publish either the result or an error event
	result, err := w.processor.Process(w.ctx, request)
	if err != nil {
		w.logger.Error("failed to process render request",
			zap.String("message_id", messageID),
			zap.String("request_id", request.RequestID),
			zap.Error(err),
		)
		w.publishError(request, err)
	} else if err := w.publishResult(result); err != nil {
		w.logger.Error("failed to publish render result",
			zap.String("request_id", request.RequestID),
			zap.Error(err),
		)
	}

	// Acknowledge the message
	w.acknowledgeMessage(messageID)
}

// publishResult publishes a render result
func (w *Worker) publishResult(result *RenderResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	// Publish to result stream
	if err := w.publish(w.resultStream, data); err != nil {
		return err
	}

	w.logger.Info("published render result",
		zap.String("request_id", result.RequestID),
		zap.String("template", result.Template),
		zap.String("path", result.PathTaken),
	)
	return nil
}

// publishError publishes an error event
func (w *Worker) publishError(request *RenderRequest, err error) {
	data, marshalErr := json.Marshal(errorEvent(request, err))
	if marshalErr != nil {
		w.logger.Error("failed to marshal error event", zap.Error(marshalErr))
		return
	}

	// Publish error to a separate stream
	if publishErr := w.publish(w.resultStream+".errors", data); publishErr != nil {
		w.logger.Error("failed to publish error event", zap.Error(publishErr))
	}
}

func errorEvent(request *RenderRequest, err error) map[string]interface{} {
	return map[string]interface{}{
		"request_id":    request.RequestID,
		"template_name": request.TemplateName,
		"error":         err.Error(),
		"timestamp":     time.Now().UTC(),
	}
}

func (w *Worker) publish(stream string, data []byte) error {
	_, err := w.redisClient.XAdd(w.ctx, &redis.XAddArgs{
		Stream: stream,
		Values: map[string]interface{}{
			"data": string(data),
		},
	}).Result()
	if err != nil {
		return fmt.Errorf("failed to publish to stream %s: %w", stream, err)
	}
	return nil
}

// acknowledgeMessage acknowledges a message from the stream
func (w *Worker) acknowledgeMessage(messageID string) {
	err := w.redisClient.XAck(w.ctx, w.streamKey, w.consumerGroup, messageID).Err()
	if err != nil {
		w.logger.Error("failed to acknowledge message",
			zap.String("message_id", messageID),
			zap.Error(err),
		)
	}
}
