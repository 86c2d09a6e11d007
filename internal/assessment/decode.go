package assessment

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// DecodeRecord parses a JSON object holding the ten fields. Clients send
// values in more than one style, so each kind is accepted loosely:
//
//	integers:  7, 7.0, "7"
//	booleans:  true, 1, "Yes", "no", "1"
//	academic:  "Poor" | "Average" | "Good" (any case) or 0 | 1 | 2
//
// Missing or unparseable fields are collected into a single ValidationError.
// Domain bounds are not checked here; call Validate for that.
func DecodeRecord(data []byte) (*FeatureRecord, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &ValidationError{Fields: []FieldError{{Field: "body", Reason: "must be a JSON object"}}}
	}

	var (
		rec  FeatureRecord
		errs []FieldError
	)
	fail := func(field, reason string) {
		errs = append(errs, FieldError{Field: field, Reason: reason})
	}
	ints := []struct {
		name string
		dst  *int
	}{
		{"sleep_hours", &rec.SleepHours},
		{"homesick_level", &rec.HomesickLevel},
		{"mess_food_rating", &rec.MessFoodRating},
		{"social_activities", &rec.SocialActivities},
		{"study_hours", &rec.StudyHours},
		{"screen_time", &rec.ScreenTime},
	}
	bools := []struct {
		name string
		dst  *bool
	}{
		{"bullied", &rec.Bullied},
		{"has_close_friends", &rec.HasCloseFriends},
		{"sports_participation", &rec.SportsParticipation},
	}

	for _, f := range ints {
		v, ok := raw[f.name]
		if !present(v, ok) {
			fail(f.name, "is required")
			continue
		}
		n, err := decodeInt(v)
		if err != nil {
			fail(f.name, err.Error())
			continue
		}
		*f.dst = n
	}

	for _, f := range bools {
		v, ok := raw[f.name]
		if !present(v, ok) {
			fail(f.name, "is required")
			continue
		}
		b, err := decodeBool(v)
		if err != nil {
			fail(f.name, err.Error())
			continue
		}
		*f.dst = b
	}

	if v, ok := raw["academic_performance"]; !present(v, ok) {
		fail("academic_performance", "is required")
	} else if a, err := decodeAcademic(v); err != nil {
		fail("academic_performance", err.Error())
	} else {
		rec.AcademicPerformance = a
	}

	if len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}
	return &rec, nil
}

func present(v json.RawMessage, ok bool) bool {
	return ok && !bytes.Equal(bytes.TrimSpace(v), []byte("null"))
}

func decodeInt(v json.RawMessage) (int, error) {
	var f float64
	if err := json.Unmarshal(v, &f); err == nil {
		if f != math.Trunc(f) {
			return 0, fmt.Errorf("must be a whole number (got %v)", f)
		}
		if math.Abs(f) > math.MaxInt32 {
			return 0, fmt.Errorf("must be a whole number in range (got %v)", f)
		}
		return int(f), nil
	}
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return 0, fmt.Errorf("must be a whole number (got %q)", s)
		}
		return n, nil
	}
	return 0, fmt.Errorf("must be a whole number")
}

func decodeBool(v json.RawMessage) (bool, error) {
	var b bool
	if err := json.Unmarshal(v, &b); err == nil {
		return b, nil
	}
	var f float64
	if err := json.Unmarshal(v, &f); err == nil {
		switch f {
		case 0:
			return false, nil
		case 1:
			return true, nil
		}
		return false, fmt.Errorf("must be 0 or 1 (got %v)", f)
	}
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		if b, ok := ParseYesNo(s); ok {
			return b, nil
		}
		return false, fmt.Errorf("must be Yes or No (got %q)", s)
	}
	return false, fmt.Errorf("must be Yes or No")
}

func decodeAcademic(v json.RawMessage) (Academic, error) {
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		a := ParseAcademic(s)
		if a == "" {
			return "", fmt.Errorf("is required")
		}
		return a, nil
	}
	var f float64
	if err := json.Unmarshal(v, &f); err == nil {
		if f == math.Trunc(f) {
			if a, ok := AcademicFromOrdinal(int(f)); ok {
				return a, nil
			}
		}
		return "", fmt.Errorf("must be 0 (Poor), 1 (Average) or 2 (Good) (got %v)", f)
	}
	return "", fmt.Errorf("must be Poor, Average or Good")
}
