package selector

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/aescanero/dago-node-render/internal/eval/cel"
)

const (
	// PathRule marks a selection made by a matching rule
	PathRule = "rule"
	// PathFallback marks a selection that fell back to the default template
	PathFallback = "fallback"
)

// ErrInvalidConfig is wrapped by every config validation failure
var ErrInvalidConfig = errors.New("invalid selection config")

// Config represents the template selection rules of a render request
type Config struct {
	Rules    []Rule `json:"rules,omitempty"`
	Fallback string `json:"fallback"`
}

// Rule represents a CEL-based selection rule
type Rule struct {
	Condition string `json:"condition"`
	Template  string `json:"template"`
}

// Selection represents the result of a selection
type Selection struct {
	Template  string `json:"template"`
	Reasoning string `json:"reasoning"`
	PathTaken string `json:"path_taken"`
}

// Selector handles template selection
type Selector struct {
	celEvaluator *cel.Evaluator
	logger       *zap.Logger
}

// NewSelector creates a new selector
func NewSelector(logger *zap.Logger) *Selector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Selector{
		celEvaluator: cel.NewEvaluator(),
		logger:       logger,
	}
}

// Select chooses a template for data according to config
func (s *Selector) Select(ctx context.Context, data map[string]interface{}, config *Config) (*Selection, error) {
	if err := Validate(config); err != nil {
		return nil, err
	}

	vars := map[string]interface{}{cel.DataVariable: data}

	for i, rule := range config.Rules {
		s.logger.Debug("evaluating rule",
			zap.Int("rule_index", i),
			zap.String("condition", rule.Condition),
		)

		result, err := s.celEvaluator.Evaluate(ctx, rule.Condition, vars)
		if err != nil {
			s.logger.Warn("rule evaluation error",
				zap.Int("rule_index", i),
				zap.String("condition", rule.Condition),
				zap.Error(err),
			)
			continue
		}

		matched, ok := result.(bool)
		if !ok {
			s.logger.Warn("rule condition did not return boolean",
				zap.Int("rule_index", i),
				zap.String("condition", rule.Condition),
				zap.Any("result", result),
			)
			continue
		}

		if matched {
			s.logger.Info("rule matched",
				zap.Int("rule_index", i),
				zap.String("template", rule.Template),
			)
			return &Selection{
				Template:  rule.Template,
				Reasoning: fmt.Sprintf("matched rule %d: %s", i, rule.Condition),
				PathTaken: PathRule,
			}, nil
		}
	}

	s.logger.Info("no rules matched, using fallback",
		zap.String("fallback", config.Fallback),
	)

	return &Selection{
		Template:  config.Fallback,
		Reasoning: "no rules matched",
		PathTaken: PathFallback,
	}, nil
}

// Validate validates a selection config
func Validate(config *Config) error {
	if config == nil {
		return fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}

	if config.Fallback == "" {
		return fmt.Errorf("%w: fallback template is required", ErrInvalidConfig)
	}

	for i, rule := range config.Rules {
		if rule.Condition == "" {
			return fmt.Errorf("%w: rule %d: condition is required", ErrInvalidConfig, i)
		}
		if rule.Template == "" {
			return fmt.Errorf("%w: rule %d: template is required", ErrInvalidConfig, i)
		}
	}

	return nil
}
