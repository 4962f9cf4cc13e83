package main

import (
	"fmt"
	"os"
	"os/exec"
	"sort"
	"strings"

	"github.com/go-faster/jx"
)

const modulePrefix = "tgbot/"

type listedPackage struct {
	ImportPath   string
	Imports      []string
	TestImports  []string
	XTestImports []string
}

// importRule forbids packages under importer from importing packages under
// imported. Prefixes without a dot are relative to the module.
type importRule struct {
	importer string
	imported string
	reason   string
}

var importRules = []importRule{
	{importer: "pkg/tgbot", imported: "internal/", reason: "pkg/tgbot must not import internal/*"},
	{importer: "pkg/tgbot", imported: "cmd/", reason: "pkg/tgbot must not import cmd/*"},
	{importer: "pkg/tgbot", imported: "github.com/gotd/", reason: "pkg/tgbot must stay free of MTProto types"},
	{importer: "internal/kernel", imported: "internal/driver", reason: "internal/kernel must not import internal/driver/*"},
	{importer: "internal/driver", imported: "internal/kernel", reason: "internal/driver must not import internal/kernel"},
}

func main() {
	violations, err := check()
	if err != nil {
		fmt.Fprintf(os.Stderr, "arch-check: %v\n", err)
		os.Exit(1)
	}
	if len(violations) > 0 {
		fmt.Println("arch-check: architecture violations:")
		for _, violation := range violations {
			fmt.Println("  -", violation)
		}
		os.Exit(1)
	}
	fmt.Println("arch-check: passed")
}

// check lists every package of the module, tests included, and returns the
// import rule violations.
func check() ([]string, error) {
	list := exec.Command("go", "list", "-json", "-test", "./...")
	list.Stderr = os.Stderr
	output, err := list.Output()
	if err != nil {
		return nil, fmt.Errorf("go list: %w", err)
	}

	packages, err := parsePackages(output)
	if err != nil {
		return nil, fmt.Errorf("decode go list output: %w", err)
	}

	return collectViolations(packages), nil
}

// parsePackages reads the concatenated package objects printed by go list.
func parsePackages(data []byte) ([]listedPackage, error) {
	d := jx.DecodeBytes(data)
	result := make([]listedPackage, 0, 64)
	for d.Next() != jx.Invalid {
		var pkg listedPackage
		err := d.Obj(func(d *jx.Decoder, key string) error {
			switch key {
			case "ImportPath":
				value, err := d.Str()
				pkg.ImportPath = value
				return err
			case "Imports":
				return readStrings(d, &pkg.Imports)
			case "TestImports":
				return readStrings(d, &pkg.TestImports)
			case "XTestImports":
				return readStrings(d, &pkg.XTestImports)
			default:
				return d.Skip()
			}
		})
		if err != nil {
			return nil, err
		}
		if pkg.ImportPath == "" {
			continue
		}
		result = append(result, pkg)
	}

	return result, nil
}

func readStrings(d *jx.Decoder, dst *[]string) error {
	return d.Arr(func(d *jx.Decoder) error {
		value, err := d.Str()
		if err != nil {
			return err
		}
		*dst = append(*dst, value)
		return nil
	})
}

func collectViolations(packages []listedPackage) []string {
	seen := make(map[string]bool)
	var violations []string
	for _, pkg := range packages {
		for _, imported := range pkg.allImports() {
			reason := violationReason(pkg.ImportPath, imported)
			entry := fmt.Sprintf("%s -> %s (%s)", pkg.ImportPath, imported, reason)
			if reason == "" || seen[entry] {
				continue
			}
			seen[entry] = true
			violations = append(violations, entry)
		}
	}
	sort.Strings(violations)

	return violations
}

func (p listedPackage) allImports() []string {
	imports := make([]string, 0, len(p.Imports)+len(p.TestImports)+len(p.XTestImports))
	imports = append(imports, p.Imports...)
	imports = append(imports, p.TestImports...)

	return append(imports, p.XTestImports...)
}

func violationReason(importer, imported string) string {
	for _, rule := range importRules {
		if strings.HasPrefix(importer, modulePrefix+rule.importer) &&
			strings.HasPrefix(imported, qualify(rule.imported)) {
			return rule.reason
		}
	}

	return ""
}

func qualify(prefix string) string {
	if strings.Contains(strings.SplitN(prefix, "/", 2)[0], ".") {
		return prefix
	}

	return modulePrefix + prefix
}
