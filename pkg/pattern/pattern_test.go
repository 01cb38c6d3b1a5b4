package pattern

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/siyuan-infoblox/import-order/pkg/errors"
)

func TestParse_ValidSpecifications(t *testing.T) {
	tests := []struct {
		name           string
		configText     string
		wantTexts      []string
		wantWildcard   int
		groupUnmatched bool
	}{
		{
			name:           "explicit grouped wildcard",
			configText:     "System;Microsoft;**",
			wantTexts:      []string{"System", "Microsoft", "**"},
			wantWildcard:   2,
			groupUnmatched: true,
		},
		{
			name:           "explicit ungrouped wildcard",
			configText:     "System;*",
			wantTexts:      []string{"System", "*"},
			wantWildcard:   1,
			groupUnmatched: false,
		},
		{
			name:           "wildcard synthesized when absent",
			configText:     "System;Microsoft.Win32",
			wantTexts:      []string{"System", "Microsoft.Win32", "**"},
			wantWildcard:   2,
			groupUnmatched: true,
		},
		{
			name:           "wildcard in the middle keeps declaration order",
			configText:     "System;**;Microsoft",
			wantTexts:      []string{"System", "**", "Microsoft"},
			wantWildcard:   1,
			groupUnmatched: true,
		},
		{
			name:           "whitespace padding around separators is trimmed",
			configText:     " System ; Microsoft.Win32 ;\t**",
			wantTexts:      []string{"System", "Microsoft.Win32", "**"},
			wantWildcard:   2,
			groupUnmatched: true,
		},
		{
			name:           "prefix relationships between distinct patterns are legal",
			configText:     "System;System.Collections;System.Collections.Generic",
			wantTexts:      []string{"System", "System.Collections", "System.Collections.Generic", "**"},
			wantWildcard:   3,
			groupUnmatched: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			table, err := Parse(tt.configText)
			req.NoError(err)

			patterns := table.Patterns()
			req.Len(patterns, len(tt.wantTexts))
			for i, p := range patterns {
				req.Equal(tt.wantTexts[i], p.Text, "pattern %d", i)
				req.Equal(i, p.Order, "pattern %d order", i)
			}
			req.Equal(tt.wantWildcard, table.WildcardOrder())
			req.Equal(tt.groupUnmatched, table.GroupUnmatched())
		})
	}
}

func TestParse_Rejections(t *testing.T) {
	tests := []struct {
		name       string
		configText string
		wantCode   errors.Code
	}{
		{"empty group between separators", "System;;Windows", errors.CodeEmptyGroup},
		{"trailing separator", "System;", errors.CodeEmptyGroup},
		{"leading separator", ";System", errors.CodeEmptyGroup},
		{"entirely whitespace", "   ", errors.CodeEmptyGroup},
		{"single separator alone", ";", errors.CodeEmptyGroup},
		{"empty specification", "", errors.CodeEmptyGroup},
		{"duplicate pattern", "System;Microsoft;System", errors.CodeDuplicatePattern},
		{"two wildcard forms", "*;**", errors.CodeDuplicateWildcard},
		{"two grouped wildcards", "System;**;**", errors.CodeDuplicateWildcard},
		{"trailing delimiter", "System.", errors.CodeBadDelimiter},
		{"leading delimiter", ".System", errors.CodeBadDelimiter},
		{"doubled delimiter", "System..IO", errors.CodeMalformedSegment},
		{"embedded wildcard", "System.*", errors.CodeMalformedSegment},
		{"interior whitespace", "System .IO", errors.CodeMalformedSegment},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			table, err := Parse(tt.configText)
			req.Nil(table)

			var perr *errors.ParseError
			req.ErrorAs(err, &perr)
			req.Equal(tt.wantCode, perr.Code, "Parse(%q)", tt.configText)
		})
	}
}

func TestTable_Classify(t *testing.T) {
	req := require.New(t)
	table, err := Parse("System;System.Collections;Microsoft.Win32")
	req.NoError(err)

	tests := []struct {
		name        string
		path        string
		wantOrder   int
		wantGrouped bool
	}{
		{"exact pattern match", "System", 0, false},
		{"prefix match", "System.IO", 0, false},
		{"longest prefix wins over shorter", "System.Collections.Generic", 1, false},
		{"exact match on deeper pattern", "System.Collections", 1, false},
		{"second root", "Microsoft.Win32.Registry", 2, false},
		{"partial root is no match", "Microsoft.CSharp", 3, true},
		{"unmatched falls to synthesized wildcard", "Newtonsoft.Json", 3, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order, grouped := table.Classify(tt.path)
			require.Equal(t, tt.wantOrder, order, "Classify(%q)", tt.path)
			require.Equal(t, tt.wantGrouped, grouped, "Classify(%q) fallback", tt.path)
		})
	}
}

func TestTable_Classify_UngroupedFallback(t *testing.T) {
	req := require.New(t)
	table, err := Parse("System;*")
	req.NoError(err)

	order, grouped := table.Classify("Newtonsoft.Json")
	req.Equal(1, order)
	req.False(grouped, "ungrouped wildcard fallback must not report grouped")

	order, grouped = table.Classify("System.IO")
	req.Equal(0, order)
	req.False(grouped)
}

func TestTable_Classify_FallbackCoverage(t *testing.T) {
	req := require.New(t)
	table, err := Parse("System;Microsoft")
	req.NoError(err)

	// Every unmatched path shares the one synthesized order.
	for _, path := range []string{"Newtonsoft.Json", "Acme", "Zebra.Util.Internal", "Systematic.Tools"} {
		order, grouped := table.Classify(path)
		req.Equal(2, order, "Classify(%q)", path)
		req.True(grouped, "Classify(%q)", path)
	}
}

func TestParse_Determinism(t *testing.T) {
	req := require.New(t)
	const configText = "System;System.Collections;Microsoft.Win32;*"

	first, err := Parse(configText)
	req.NoError(err)
	second, err := Parse(configText)
	req.NoError(err)

	paths := []string{
		"System", "System.IO", "System.Collections.Generic",
		"Microsoft.Win32.Registry", "Newtonsoft.Json", "Acme.Tool",
	}
	for _, path := range paths {
		o1, g1 := first.Classify(path)
		o2, g2 := second.Classify(path)
		req.Equal(o1, o2, "order diverged for %q", path)
		req.Equal(g1, g2, "fallback flag diverged for %q", path)
	}
}
