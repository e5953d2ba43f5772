package codec

import (
	"context"
	"strings"
	"time"

	onboarding "github.com/reoring/onboarding"
	"github.com/reoring/onboarding/i18n"
)

// DateLayout is the wire layout of calendar dates (HTML date inputs).
const DateLayout = "2006-01-02"

// Date returns a Codec between ISO calendar dates and midnight time.Time
// values in the location of the context clock.
func Date() onboarding.Codec[string, time.Time] { return dateCodec{} }

type dateCodec struct{}

func (dateCodec) Decode(ctx context.Context, a string) (time.Time, error) {
	loc := onboarding.Now(ctx).Location()
	s := strings.TrimSpace(a)
	t, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		// tolerate full timestamps, keeping only the calendar date
		if ts, err2 := time.Parse(time.RFC3339, s); err2 == nil {
			return time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, loc), nil
		}
		return time.Time{}, onboarding.Issues{{Path: "/", Code: onboarding.CodeInvalidFormat, Message: i18n.T(i18n.DateInvalid, nil), Hint: DateLayout, Cause: err}}
	}
	return t, nil
}

func (dateCodec) Encode(_ context.Context, b time.Time) (string, error) {
	return b.Format(DateLayout), nil
}

// CanonicalDate rewrites a decodable date (padded, or a full timestamp) as
// DateLayout. Anything else is returned unchanged for the validators to report.
func CanonicalDate(ctx context.Context, s string) string {
	t, err := Date().Decode(ctx, s)
	if err != nil {
		return s
	}
	out, _ := Date().Encode(ctx, t)
	return out
}
