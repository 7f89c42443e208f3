package cmd

import (
	"context"
	"fmt"
	"strings"

	"ditto/core/storage"
)

// splitRoots parses the positional grammar shared by sync and watch:
//
//	read <roots...> write <roots...>
//
// Trailing slashes are stripped from every root, except the bare root path
// "/" which is passed through so it can be rejected with a clear error
// later. At least one read root and one write root are required.
func splitRoots(args []string) (readRoots, writeRoots []string, err error) {
	var setRead, setWrite bool

	for _, arg := range args {
		switch arg {
		case "read":
			setRead, setWrite = true, false
			continue
		case "write":
			setRead, setWrite = false, true
			continue
		}

		if len(arg) > 1 {
			arg = strings.TrimSuffix(arg, "/")
		}

		switch {
		case setRead:
			readRoots = append(readRoots, arg)
		case setWrite:
			writeRoots = append(writeRoots, arg)
		default:
			return nil, nil, fmt.Errorf("unexpected argument before read/write keyword: %q", arg)
		}
	}

	if len(readRoots) < 1 {
		return nil, nil, fmt.Errorf("must have at least one read root")
	}
	if len(writeRoots) < 1 {
		return nil, nil, fmt.Errorf("must have at least one write root")
	}

	return readRoots, writeRoots, nil
}

// buildTargets turns write roots into storage targets.
func buildTargets(ctx context.Context, writeRoots []string, cfg storage.Config) ([]storage.Target, error) {
	targets := make([]storage.Target, 0, len(writeRoots))
	for _, root := range writeRoots {
		t, err := storage.NewTarget(ctx, root, cfg)
		if err != nil {
			return nil, err
		}
		targets = append(targets, t)
	}

	return targets, nil
}
