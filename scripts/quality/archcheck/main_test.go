package main

import "testing"

func TestViolationReason(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		importer string
		imported string
		want     bool
	}{
		{name: "core to driver", importer: "tgbot/pkg/tgbot", imported: "tgbot/internal/driver/telegram", want: true},
		{name: "core to gotd", importer: "tgbot/pkg/tgbot", imported: "github.com/gotd/td/tg", want: true},
		{name: "core to jx", importer: "tgbot/pkg/tgbot", imported: "github.com/go-faster/jx"},
		{name: "kernel to driver", importer: "tgbot/internal/kernel", imported: "tgbot/internal/driver/telegram", want: true},
		{name: "driver to kernel", importer: "tgbot/internal/driver/telegram", imported: "tgbot/internal/kernel", want: true},
		{name: "kernel to core", importer: "tgbot/internal/kernel", imported: "tgbot/pkg/tgbot"},
		{name: "cmd to everything", importer: "tgbot/cmd/tgdecode", imported: "tgbot/internal/kernel"},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got := violationReason(testCase.importer, testCase.imported) != ""
			if got != testCase.want {
				t.Fatalf("violationReason(%s, %s) violation = %v, want %v",
					testCase.importer, testCase.imported, got, testCase.want)
			}
		})
	}
}

func TestParsePackages(t *testing.T) {
	t.Parallel()

	output := []byte(`{"ImportPath":"tgbot/pkg/tgbot","Imports":["github.com/gotd/td/tg"],"Dir":"/x"}
{"ImportPath":"","Imports":[]}
{"ImportPath":"tgbot/cmd/tgdecode","TestImports":["testing"],"XTestImports":["tgbot/pkg/tgbot"]}`)

	packages, err := parsePackages(output)
	if err != nil {
		t.Fatalf("parsePackages failed: %v", err)
	}
	if len(packages) != 2 {
		t.Fatalf("packages = %d, want 2", len(packages))
	}
	if packages[1].TestImports[0] != "testing" || packages[1].XTestImports[0] != "tgbot/pkg/tgbot" {
		t.Fatalf("packages[1] = %+v", packages[1])
	}

	violations := collectViolations(packages)
	if len(violations) != 1 {
		t.Fatalf("violations = %v, want one", violations)
	}
}

func TestCollectViolationsDeduplicates(t *testing.T) {
	t.Parallel()

	packages := []listedPackage{{
		ImportPath:  "tgbot/internal/kernel",
		Imports:     []string{"tgbot/internal/driver/telegram", "tgbot/pkg/tgbot"},
		TestImports: []string{"tgbot/internal/driver/telegram"},
	}}

	violations := collectViolations(packages)
	want := "tgbot/internal/kernel -> tgbot/internal/driver/telegram (internal/kernel must not import internal/driver/*)"
	if len(violations) != 1 || violations[0] != want {
		t.Fatalf("violations = %v, want [%s]", violations, want)
	}
}
