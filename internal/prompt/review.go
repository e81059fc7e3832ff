package prompt

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-formcheck/pkg/engine"
)

// Action is the user's decision about a repaired document.
type Action int

const (
	ActionWrite Action = iota
	ActionPrint
	ActionDiscard
)

var actionLabels = []string{
	"Write the repaired document",
	"Print it to stdout",
	"Discard the changes",
}

// Summary lists the fixes that Fix applied, one per line, in report order.
func Summary(result engine.FixResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "score %d -> %d", result.Before.Score, result.After.Score)
	for _, group := range [][]engine.Finding{result.Before.Errors, result.Before.Warnings} {
		for _, f := range group {
			if !f.AutoFixable {
				continue
			}
			fmt.Fprintf(&b, "\n  fix %s: %s", f.Field, f.Message)
		}
	}
	if remaining := result.After.FixableCount(); remaining > 0 {
		fmt.Fprintf(&b, "\n  %d fixable finding(s) remain", remaining)
	}
	return b.String()
}

// Review shows the fix summary and asks what to do with the result. Documents
// with nothing to change resolve to ActionDiscard without asking.
func Review(ctx context.Context, driver Driver, location string, result engine.FixResult) (Action, error) {
	if !result.Changed() || result.Document == nil {
		if err := driver.Info(ctx, location+": nothing to fix"); err != nil {
			return ActionDiscard, err
		}
		return ActionDiscard, nil
	}
	if err := driver.Info(ctx, location+": "+Summary(result)); err != nil {
		return ActionDiscard, err
	}
	idx, err := driver.Select(ctx, SelectConfig{
		Message: "Apply fixes to " + location + "?",
		Options: actionLabels,
	})
	if err != nil {
		return ActionDiscard, err
	}
	if idx < 0 || idx >= len(actionLabels) {
		return ActionDiscard, fmt.Errorf("prompt: choice %d out of range", idx)
	}
	action := Action(idx)
	if action != ActionWrite {
		return action, nil
	}

	ok, err := driver.Confirm(ctx, ConfirmConfig{
		Message: "Overwrite " + location + "?",
		Default: true,
	})
	if err != nil {
		return ActionDiscard, err
	}
	if !ok {
		return ActionDiscard, nil
	}
	return ActionWrite, nil
}
