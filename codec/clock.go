package codec

import (
	"context"
	"fmt"
	"strings"
	"time"

	onboarding "github.com/reoring/onboarding"
	"github.com/reoring/onboarding/i18n"
)

// TimeOfDay returns a Codec between "HH:MM" (24h, as produced by HTML time
// inputs) and the offset from midnight. "HH:MM:SS" is accepted on decode and
// produced on encode when the seconds are not zero.
func TimeOfDay() onboarding.Codec[string, time.Duration] { return clockCodec{} }

type clockCodec struct{}

func (clockCodec) Decode(_ context.Context, a string) (time.Duration, error) {
	s := strings.TrimSpace(a)
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute + time.Duration(t.Second())*time.Second, nil
		}
	}
	return 0, onboarding.Issues{{Path: "/", Code: onboarding.CodeInvalidFormat, Message: i18n.T(i18n.TimeInvalid, nil), Hint: "HH:MM"}}
}

func (clockCodec) Encode(_ context.Context, b time.Duration) (string, error) {
	if b < 0 || b >= 24*time.Hour {
		return "", onboarding.Issues{{Path: "/", Code: onboarding.CodeDomainRange, Message: i18n.T(i18n.TimeInvalid, nil), Params: map[string]any{"got": b.String()}}}
	}
	h := int(b / time.Hour)
	m := int((b % time.Hour) / time.Minute)
	if sec := int((b % time.Minute) / time.Second); sec != 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, sec), nil
	}
	return fmt.Sprintf("%02d:%02d", h, m), nil
}

// CanonicalTime rewrites a decodable time of day as "HH:MM" (or "HH:MM:SS").
// Anything else is returned unchanged.
func CanonicalTime(ctx context.Context, s string) string {
	d, err := TimeOfDay().Decode(ctx, s)
	if err != nil {
		return s
	}
	out, err := TimeOfDay().Encode(ctx, d)
	if err != nil {
		return s
	}
	return out
}
