package domain

import "fmt"

const (
	// LargeTTLSeconds is the TTL above which a maxAgeCapDays becomes mandatory (365 days).
	LargeTTLSeconds = 365 * secondsPerDay
	// MaxAgeCapDaysLimit is the largest accepted maxAgeCapDays (ten years).
	MaxAgeCapDaysLimit = 3650
	// AgingTTLSecondsLimit is the largest accepted TTL of a single aging rule (30 days).
	AgingTTLSecondsLimit = 30 * secondsPerDay
)

// ValidateISGConfig returns the first violation in cfg as a *ConfigError.
// A nil config is valid and means ISG is disabled.
//
// Checks run in order: ttlSeconds, maxAgeCapDays, each aging entry on its own,
// then the ladder as a whole (sort order, duplicates, cap). Decoders that type-check
// fields themselves call the per-field validators in the same order.
func ValidateISGConfig(cfg *ISGConfig) error {
	if cfg == nil {
		return nil
	}
	if err := ValidateTTL(cfg.TTLSeconds, cfg.MaxAgeCapDays != nil); err != nil {
		return err
	}
	if err := ValidateMaxAgeCap(cfg.MaxAgeCapDays); err != nil {
		return err
	}
	for i, rule := range cfg.Aging {
		if err := ValidateAgingRule(i, rule); err != nil {
			return err
		}
	}
	return ValidateAgingLadder(cfg.Aging, cfg.MaxAgeCapDays)
}

// ValidateTTL checks the sign and magnitude of ttlSeconds. hasCap reports whether
// maxAgeCapDays is set, which lifts the one-year limit.
func ValidateTTL(ttlSeconds *int, hasCap bool) error {
	if ttlSeconds == nil {
		return nil
	}
	ttl := *ttlSeconds
	if ttl <= 0 {
		return NewConfigError(CodeInvalidTTL, "isg.ttlSeconds", ttl,
			"ttlSeconds must be a positive integer, e.g. ttlSeconds: 3600")
	}
	if ttl > LargeTTLSeconds && !hasCap {
		return NewConfigError(CodeTTLTooLarge, "isg.ttlSeconds", ttl,
			"ttlSeconds above 365 days requires maxAgeCapDays, e.g. maxAgeCapDays: 365")
	}
	return nil
}

// ValidateMaxAgeCap checks the sign and magnitude of maxAgeCapDays.
func ValidateMaxAgeCap(maxAgeCapDays *int) error {
	if maxAgeCapDays == nil {
		return nil
	}
	capDays := *maxAgeCapDays
	if capDays <= 0 {
		return NewConfigError(CodeInvalidMaxAgeCap, "isg.maxAgeCapDays", capDays,
			"maxAgeCapDays must be a positive integer, e.g. maxAgeCapDays: 365")
	}
	if capDays > MaxAgeCapDaysLimit {
		return NewConfigError(CodeMaxAgeCapTooLarge, "isg.maxAgeCapDays", capDays,
			fmt.Sprintf("maxAgeCapDays must not exceed %d, e.g. maxAgeCapDays: 365", MaxAgeCapDaysLimit))
	}
	return nil
}

// ValidateAgingRule checks the aging entry at index i in isolation.
func ValidateAgingRule(i int, rule *AgingRule) error {
	field := fmt.Sprintf("isg.aging[%d]", i)
	if rule == nil {
		return NewConfigError(CodeInvalidAgingRule, field, nil,
			"aging entries must be objects, e.g. { untilDays: 7, ttlSeconds: 600 }")
	}
	if rule.UntilDays == nil {
		return NewConfigError(CodeMissingAgingField, field+".untilDays", nil,
			"aging entry is missing untilDays, e.g. { untilDays: 7, ttlSeconds: 600 }")
	}
	if rule.TTLSeconds == nil {
		return NewConfigError(CodeMissingAgingField, field+".ttlSeconds", nil,
			"aging entry is missing ttlSeconds, e.g. { untilDays: 7, ttlSeconds: 600 }")
	}
	if *rule.UntilDays <= 0 {
		return NewConfigError(CodeInvalidAgingValue, field+".untilDays", *rule.UntilDays,
			"untilDays must be a positive integer, e.g. untilDays: 7")
	}
	if *rule.TTLSeconds <= 0 {
		return NewConfigError(CodeInvalidAgingValue, field+".ttlSeconds", *rule.TTLSeconds,
			"ttlSeconds must be a positive integer, e.g. ttlSeconds: 600")
	}
	if *rule.TTLSeconds > AgingTTLSecondsLimit {
		return NewConfigError(CodeAgingTTLTooLarge, field+".ttlSeconds", *rule.TTLSeconds,
			"aging ttlSeconds must not exceed 30 days, e.g. ttlSeconds: 86400")
	}
	return nil
}

// ValidateAgingLadder checks sort order, duplicates and the cap across rules.
// Every rule must already have passed ValidateAgingRule.
func ValidateAgingLadder(rules []*AgingRule, maxAgeCapDays *int) error {
	for i := 1; i < len(rules); i++ {
		prev, cur := *rules[i-1].UntilDays, *rules[i].UntilDays
		if cur < prev {
			return NewConfigError(CodeUnsortedAgingRules, fmt.Sprintf("isg.aging[%d].untilDays", i), cur,
				fmt.Sprintf("aging rules must be sorted by ascending untilDays, e.g. move untilDays: %d before untilDays: %d", cur, prev))
		}
	}
	for i := 1; i < len(rules); i++ {
		prev, cur := *rules[i-1].UntilDays, *rules[i].UntilDays
		if cur == prev {
			return NewConfigError(CodeDuplicateAgingRule, fmt.Sprintf("isg.aging[%d].untilDays", i), cur,
				fmt.Sprintf("untilDays %d appears twice, merge the rules or pick another value, e.g. untilDays: %d", cur, cur+1))
		}
	}
	if maxAgeCapDays == nil {
		return nil
	}
	capDays := *maxAgeCapDays
	for i, rule := range rules {
		if *rule.UntilDays > capDays {
			return NewConfigError(CodeAgingExceedsCap, fmt.Sprintf("isg.aging[%d].untilDays", i), *rule.UntilDays,
				fmt.Sprintf("untilDays must not exceed maxAgeCapDays, e.g. untilDays: %d", capDays))
		}
	}
	return nil
}
