package severity

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/hoopsync/hsdb/pkg/config"
	"github.com/hoopsync/hsdb/pkg/errcode"
)

// NegativeThresholdError creates an error for negative threshold
// bounds.
func NegativeThresholdError(t config.ThresholdsConfig) error {
	msg := `Severity thresholds must be non-negative

<em>Configured:</em> count %v/%v, score %v/%v`

	vars := []any{
		t.CountLowPct, t.CountMediumPct,
		t.ScoreLowDiff, t.ScoreMediumDiff,
	}

	return &gn.Error{
		Code: errcode.ConfigThresholdError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("negative severity threshold"),
	}
}

// BoundsOrderError creates an error for thresholds that are not
// strictly ascending.
func BoundsOrderError(category string, low, medium float64) error {
	msg := `Severity thresholds for <em>%s</em> fields must ascend

<em>Configured:</em> low bound %v, medium bound %v

<em>How to fix:</em>
  1. Check the thresholds section of config.yaml
  2. The low bound must be smaller than the medium bound`

	vars := []any{category, low, medium}

	return &gn.Error{
		Code: errcode.ConfigThresholdError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf(
			"%s thresholds not ascending: low %v >= medium %v",
			category, low, medium),
	}
}
