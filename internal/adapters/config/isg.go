package config

import (
	"fmt"
	"math"
	"strconv"

	"go.trai.ch/quill/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

const (
	tagNull  = "!!null"
	tagInt   = "!!int"
	tagFloat = "!!float"
	tagBool  = "!!bool"
)

// decodeISG turns the isg node into a validated config. Each field is type-checked and then
// range-checked before the next one is read, so the first *domain.ConfigError follows the
// order ttlSeconds, maxAgeCapDays, aging entries, aging ladder.
func (l *Loader) decodeISG(node *yaml.Node) (*domain.ISGConfig, error) {
	if node.Kind == 0 || isNull(node) {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, zerr.With(domain.ErrConfigParseFailed, "field", "isg")
	}

	fields := make(map[string]*yaml.Node, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		switch key {
		case "enabled", "ttlSeconds", "maxAgeCapDays", "aging":
			fields[key] = node.Content[i+1]
		default:
			l.Logger.Warn(fmt.Sprintf("ignoring unknown key isg.%s in %s", key, domain.ConfigFileName))
		}
	}

	cfg := &domain.ISGConfig{}

	if n, ok := fields["enabled"]; ok && !isNull(n) {
		if n.Kind != yaml.ScalarNode || n.Tag != tagBool {
			return nil, zerr.With(domain.ErrConfigParseFailed, "field", "isg.enabled")
		}
		if err := n.Decode(&cfg.Enabled); err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "field", "isg.enabled")
		}
	}

	var err error
	if cfg.TTLSeconds, err = decodeInt(fields["ttlSeconds"], "isg.ttlSeconds", domain.CodeInvalidTTL,
		"ttlSeconds must be a positive integer, e.g. ttlSeconds: 3600"); err != nil {
		return nil, err
	}
	capNode, hasCap := fields["maxAgeCapDays"]
	if err = domain.ValidateTTL(cfg.TTLSeconds, hasCap && !isNull(capNode)); err != nil {
		return nil, err
	}

	if cfg.MaxAgeCapDays, err = decodeInt(capNode, "isg.maxAgeCapDays", domain.CodeInvalidMaxAgeCap,
		"maxAgeCapDays must be a positive integer, e.g. maxAgeCapDays: 365"); err != nil {
		return nil, err
	}
	if err = domain.ValidateMaxAgeCap(cfg.MaxAgeCapDays); err != nil {
		return nil, err
	}

	if cfg.Aging, err = decodeAging(fields["aging"]); err != nil {
		return nil, err
	}
	if err = domain.ValidateAgingLadder(cfg.Aging, cfg.MaxAgeCapDays); err != nil {
		return nil, err
	}

	return cfg, nil
}

func decodeAging(node *yaml.Node) ([]*domain.AgingRule, error) {
	if node == nil || isNull(node) {
		return nil, nil
	}
	if node.Kind != yaml.SequenceNode {
		return nil, domain.NewConfigError(domain.CodeInvalidAgingRule, "isg.aging", node.Value,
			"aging must be a list, e.g. aging: [{ untilDays: 7, ttlSeconds: 600 }]")
	}

	rules := make([]*domain.AgingRule, len(node.Content))
	for i, item := range node.Content {
		field := fmt.Sprintf("isg.aging[%d]", i)
		if isNull(item) {
			return nil, domain.ValidateAgingRule(i, nil)
		}
		if item.Kind != yaml.MappingNode {
			return nil, domain.NewConfigError(domain.CodeInvalidAgingRule, field, item.Value,
				"aging entries must be objects, e.g. { untilDays: 7, ttlSeconds: 600 }")
		}

		rule := &domain.AgingRule{}
		for j := 0; j+1 < len(item.Content); j += 2 {
			var err error
			value := item.Content[j+1]
			switch key := item.Content[j].Value; key {
			case "untilDays":
				rule.UntilDays, err = decodeInt(value, field+".untilDays", domain.CodeInvalidAgingValue,
					"untilDays must be a positive integer, e.g. untilDays: 7")
			case "ttlSeconds":
				rule.TTLSeconds, err = decodeInt(value, field+".ttlSeconds", domain.CodeInvalidAgingValue,
					"ttlSeconds must be a positive integer, e.g. ttlSeconds: 600")
			}
			if err != nil {
				return nil, err
			}
		}
		if err := domain.ValidateAgingRule(i, rule); err != nil {
			return nil, err
		}
		rules[i] = rule
	}
	return rules, nil
}

// decodeInt accepts integer scalars only. Floats (including NaN and whole values), strings
// and collections are rejected with code; null or absent leaves the field unset.
func decodeInt(node *yaml.Node, field string, code domain.ConfigErrorCode, message string) (*int, error) {
	if node == nil || isNull(node) {
		return nil, nil
	}
	if node.Kind != yaml.ScalarNode {
		return nil, domain.NewConfigError(code, field, node.Value, message)
	}

	switch node.Tag {
	case tagInt:
		var v int64
		if err := node.Decode(&v); err != nil || v > math.MaxInt32 || v < math.MinInt32 {
			return nil, domain.NewConfigError(code, field, node.Value, message)
		}
		n := int(v)
		return &n, nil
	case tagFloat:
		f, err := strconv.ParseFloat(node.Value, 64)
		if err != nil {
			return nil, domain.NewConfigError(code, field, node.Value, message)
		}
		return nil, domain.NewConfigError(code, field, f, message)
	default:
		return nil, domain.NewConfigError(code, field, node.Value, message)
	}
}

func isNull(node *yaml.Node) bool {
	return node.Kind == yaml.ScalarNode && node.Tag == tagNull
}
