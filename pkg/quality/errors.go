package quality

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/hoopsync/hsdb/pkg/config"
	"github.com/hoopsync/hsdb/pkg/errcode"
)

// BaselineRangeError creates an error for baselines outside 0–100.
func BaselineRangeError(cfg config.QualityConfig) error {
	msg := `Quality baselines must stay within 0–100

<em>Configured:</em> single-source %d, multi-source %d`

	vars := []any{cfg.SingleSourceBaseline, cfg.MultiSourceBaseline}

	return &gn.Error{
		Code: errcode.ConfigThresholdError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("quality baseline out of range: %d/%d",
			cfg.SingleSourceBaseline, cfg.MultiSourceBaseline),
	}
}

// NegativePenaltyError creates an error for negative penalties.
func NegativePenaltyError(cfg config.QualityConfig) error {
	msg := `Quality penalties must be non-negative

<em>Configured:</em> high %d, medium %d, low %d`

	vars := []any{cfg.PenaltyHigh, cfg.PenaltyMedium, cfg.PenaltyLow}

	return &gn.Error{
		Code: errcode.ConfigThresholdError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("negative quality penalty: %d/%d/%d",
			cfg.PenaltyHigh, cfg.PenaltyMedium, cfg.PenaltyLow),
	}
}

// FloorRangeError creates an error for a score floor outside 0–100.
func FloorRangeError(cfg config.QualityConfig) error {
	msg := "Quality score floor must stay within 0–100, got %d"
	vars := []any{cfg.Floor}

	return &gn.Error{
		Code: errcode.ConfigThresholdError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("quality floor out of range: %d", cfg.Floor),
	}
}
