package cmd

import (
	"testing"

	"github.com/google/subcommands"
	"github.com/stretchr/testify/assert"
)

func TestPVCmd(t *testing.T) {
	testCases := []struct {
		name   string
		args   []string
		status subcommands.ExitStatus
		want   string
	}{
		{
			name:   "perpetuity",
			args:   []string{"-kind", "perpetuity", "-value", "100", "-rate", "0.05", "-currency", "USD"},
			status: subcommands.ExitSuccess,
			want:   "**Present value: $2,000.00**",
		},
		{
			name:   "growing perpetuity",
			args:   []string{"-kind", "growing-perpetuity", "-value", "100", "-rate", "0.05", "-growth", "0.02", "-currency", "usd"},
			status: subcommands.ExitSuccess,
			want:   "$3,400.00",
		},
		{
			name:   "no currency",
			args:   []string{"-kind", "fv", "-value", "1000", "-rate", "0.05", "-years", "10"},
			status: subcommands.ExitSuccess,
			want:   "613.91",
		},
		{
			name:   "zero rate",
			args:   []string{"-kind", "perpetuity", "-value", "100", "-rate", "0"},
			status: subcommands.ExitFailure,
		},
		{
			name:   "years required",
			args:   []string{"-kind", "annuity", "-value", "100", "-rate", "0.05"},
			status: subcommands.ExitUsageError,
		},
		{
			name:   "unknown kind",
			args:   []string{"-kind", "bond", "-value", "100", "-rate", "0.05"},
			status: subcommands.ExitUsageError,
		},
		{
			name:   "unknown currency",
			args:   []string{"-value", "100", "-rate", "0.05", "-currency", "XYZ1"},
			status: subcommands.ExitUsageError,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			status, out := run(t, &pvCmd{}, tc.args...)
			assert.Equal(t, tc.status, status)
			assert.Contains(t, out, tc.want)
		})
	}
}

func TestPVCmdDefaultCurrency(t *testing.T) {
	old := config
	t.Cleanup(func() { config = old })
	config.Currency = "EUR"

	// run keeps the configured currency, it only changes the style
	status, out := run(t, &pvCmd{}, "-value", "100", "-rate", "0.05")
	assert.Equal(t, subcommands.ExitSuccess, status)
	assert.Contains(t, out, "**Present value: €2,000.00**")
}
