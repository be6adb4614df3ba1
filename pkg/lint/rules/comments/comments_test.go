package comments_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/lualint/pkg/lint"
	_ "github.com/leapstack-labs/lualint/pkg/lint/rules/comments"
)

func TestCommentStyle(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		count int
	}{
		{name: "spaced line comment", src: "-- hello\n", count: 0},
		{name: "missing space", src: "--hello\n", count: 1},
		{name: "empty comment", src: "--\n", count: 0},
		{name: "doc comment", src: "--- @param x number\n", count: 0},
		{name: "separator", src: "----------\n", count: 0},
		{name: "block closed with dashes", src: "--[[\n text\n--]]\n", count: 0},
		{name: "block closed without dashes", src: "--[[\n text\n]]\n", count: 1},
		{name: "leveled block", src: "--[==[\n text\n--]==]\n", count: 0},
		{name: "leveled block bad close", src: "--[==[\n text\n]==]\n", count: 1},
		{name: "shebang ignored", src: "#!/usr/bin/lua\n", count: 0},
		{name: "trailing comment", src: "local x = 1; --note\n", count: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := lint.NewConfig().Only("comment-style")
			result := lint.NewAnalyzer(cfg).AnalyzeFile(context.Background(), "test.lua", tt.src)
			require.Empty(t, result.Faults)
			assert.Len(t, result.Diagnostics, tt.count)
		})
	}
}
