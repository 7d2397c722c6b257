package parser

import (
	"strings"

	"github.com/cmmoran/classdiagramgen/internal/model"
)

// parseArguments splits an argument list on top-level commas and matches
// each piece. Pieces that do not look like an argument are skipped.
func parseArguments(text string) []*model.Argument {
	args := make([]*model.Argument, 0)
	if strings.TrimSpace(text) == "" {
		return args
	}
	text = normalizeArrays(text)
	for _, piece := range SplitTopLevel(text, ',', genericPair, parenPair) {
		m := argumentRe.FindStringSubmatch(piece)
		if m == nil {
			continue
		}
		args = append(args, &model.Argument{
			Modifier: model.ParseArgumentModifier(m[1]),
			Type:     ParseType(m[2]),
			Name:     m[3],
		})
	}
	return args
}

// skipBody consumes every statement nested deeper than depth.
func skipBody(r *Reader, depth int) {
	r.Skip(r.DeeperCount(depth))
}
