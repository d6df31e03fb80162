package model

import (
	"fmt"
	"sync"

	"github.com/sf044/vitalsync/internal/domain"
)

// ClassifyAlarm maps a value onto its alarm tier. All comparisons are
// inclusive and the high side is checked first, so a value sitting exactly on
// a limit already belongs to the more severe tier.
func ClassifyAlarm(v float64, t domain.AlarmThresholds) domain.AlarmTier {
	switch {
	case v >= t.HighCritical:
		return domain.TierHighCritical
	case v >= t.HighWarning:
		return domain.TierHighWarning
	case v <= t.LowCritical:
		return domain.TierLowCritical
	case v <= t.LowWarning:
		return domain.TierLowWarning
	default:
		return domain.TierNormal
	}
}

// ParameterChannel owns the latest value and alarm state for one parameter
// kind. Alarm tier transitions fan out to alarm subscribers; every accepted
// reading fans out to value subscribers.
type ParameterChannel struct {
	mu           sync.Mutex
	kind         domain.ParameterKind
	active       bool
	hasValue     bool
	value        float64
	ts           int64
	thresholds   domain.AlarmThresholds
	alarmEnabled bool
	tier         domain.AlarmTier

	valueSubs []func(domain.ParameterReading)
	alarmSubs []func(domain.AlarmEvent)
}

func NewParameterChannel(kind domain.ParameterKind) *ParameterChannel {
	return &ParameterChannel{
		kind:         kind,
		active:       true,
		thresholds:   domain.DefaultAlarmThresholds(kind),
		alarmEnabled: true,
		tier:         domain.TierNormal,
	}
}

func (c *ParameterChannel) Kind() domain.ParameterKind { return c.kind }

// Update stores a reading, reclassifies the alarm tier, and notifies
// subscribers. Readings older than the stored one are rejected.
func (c *ParameterChannel) Update(r domain.ParameterReading) error {
	c.mu.Lock()
	if c.hasValue && r.TimestampMs < c.ts {
		last := c.ts
		c.mu.Unlock()
		return fmt.Errorf("%v: reading at %dms older than %dms", c.kind, r.TimestampMs, last)
	}
	c.hasValue = true
	c.value = r.Value
	c.ts = r.TimestampMs

	prev := c.tier
	next := domain.TierNormal
	if c.alarmEnabled {
		next = ClassifyAlarm(r.Value, c.thresholds)
	}
	c.tier = next

	valueSubs := c.valueSubs
	var alarmSubs []func(domain.AlarmEvent)
	var event domain.AlarmEvent
	if next != prev {
		alarmSubs = c.alarmSubs
		event = domain.AlarmEvent{
			Kind:        c.kind,
			TimestampMs: r.TimestampMs,
			Value:       r.Value,
			Tier:        next,
			Previous:    prev,
		}
	}
	c.mu.Unlock()

	for _, fn := range valueSubs {
		fn(r)
	}
	for _, fn := range alarmSubs {
		fn(event)
	}
	return nil
}

// Value returns the latest reading and whether one has been stored yet.
func (c *ParameterChannel) Value() (float64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value, c.hasValue
}

func (c *ParameterChannel) Timestamp() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ts
}

func (c *ParameterChannel) Tier() domain.AlarmTier {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tier
}

func (c *ParameterChannel) Thresholds() domain.AlarmThresholds {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.thresholds
}

// SetThresholds replaces the alarm limits and reclassifies the current value
// under them. The four limits must be ordered.
func (c *ParameterChannel) SetThresholds(t domain.AlarmThresholds) error {
	if t.LowCritical > t.LowWarning || t.LowWarning > t.HighWarning || t.HighWarning > t.HighCritical {
		return fmt.Errorf("%v: thresholds %+v not ordered", c.kind, t)
	}

	c.mu.Lock()
	c.thresholds = t

	prev := c.tier
	next := prev
	if c.alarmEnabled && c.hasValue {
		next = ClassifyAlarm(c.value, t)
	}
	c.tier = next

	var alarmSubs []func(domain.AlarmEvent)
	var event domain.AlarmEvent
	if next != prev {
		alarmSubs = c.alarmSubs
		event = domain.AlarmEvent{
			Kind:        c.kind,
			TimestampMs: c.ts,
			Value:       c.value,
			Tier:        next,
			Previous:    prev,
		}
	}
	c.mu.Unlock()

	for _, fn := range alarmSubs {
		fn(event)
	}
	return nil
}

// SetAlarmEnabled toggles classification. Disabling forces the tier back to
// normal; re-enabling reclassifies the stored value immediately.
func (c *ParameterChannel) SetAlarmEnabled(enabled bool) {
	c.mu.Lock()
	c.alarmEnabled = enabled

	prev := c.tier
	next := domain.TierNormal
	if enabled && c.hasValue {
		next = ClassifyAlarm(c.value, c.thresholds)
	}
	c.tier = next

	var alarmSubs []func(domain.AlarmEvent)
	var event domain.AlarmEvent
	if next != prev {
		alarmSubs = c.alarmSubs
		event = domain.AlarmEvent{
			Kind:        c.kind,
			TimestampMs: c.ts,
			Value:       c.value,
			Tier:        next,
			Previous:    prev,
		}
	}
	c.mu.Unlock()

	for _, fn := range alarmSubs {
		fn(event)
	}
}

func (c *ParameterChannel) AlarmEnabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.alarmEnabled
}

func (c *ParameterChannel) SetActive(active bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.active = active
}

func (c *ParameterChannel) Active() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// SubscribeValues registers a callback for every accepted reading.
func (c *ParameterChannel) SubscribeValues(fn func(domain.ParameterReading)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.valueSubs = append(c.valueSubs, fn)
}

// SubscribeAlarms registers a callback for every tier transition.
func (c *ParameterChannel) SubscribeAlarms(fn func(domain.AlarmEvent)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.alarmSubs = append(c.alarmSubs, fn)
}
