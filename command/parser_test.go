package command_test

import (
	"errors"
	"testing"

	"github.com/mwantia/ossfm/command"
	"github.com/mwantia/ossfm/data"
)

func testFlagSet() *command.CommandFlagSet {
	return &command.CommandFlagSet{
		Flags: map[string]*command.CommandFlag{
			"plain": {Name: "plain", Short: "p", Type: "bool"},
			"limit": {Name: "limit", Short: "n", Type: "int", Default: int64(10)},
			"path":  {Name: "path", Type: "string"},
		},
	}
}

func TestParser_Parse(t *testing.T) {
	parser := command.NewParser(testFlagSet())

	args, err := parser.Parse([]string{"-p", "--path=data/", "-n5", "report", "--", "--not-a-flag"})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if !args.Bool("plain") {
		t.Errorf("Expected plain to be set")
	}
	if args.String("path") != "data/" {
		t.Errorf("Expected path 'data/', got %q", args.String("path"))
	}
	if args.Int("limit") != 5 {
		t.Errorf("Expected limit 5, got %d", args.Int("limit"))
	}
	if len(args.Args) != 2 || args.Arg(0, "") != "report" || args.Arg(1, "") != "--not-a-flag" {
		t.Errorf("Unexpected positional args: %v", args.Args)
	}
	if args.Arg(5, "fallback") != "fallback" {
		t.Errorf("Expected fallback for missing argument")
	}
}

func TestParser_Defaults(t *testing.T) {
	args, err := command.NewParser(testFlagSet()).Parse([]string{"--limit", "3"})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if args.Int("limit") != 3 {
		t.Errorf("Expected limit 3, got %d", args.Int("limit"))
	}
	if args.Bool("plain") {
		t.Errorf("Expected plain to be unset")
	}

	args, err = command.NewParser(nil).Parse([]string{"a", "b"})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(args.Args) != 2 {
		t.Errorf("Expected two positional args, got %v", args.Args)
	}
}

func TestParser_Errors(t *testing.T) {
	tests := map[string][]string{
		"UnknownLong":  {"--unknown"},
		"UnknownShort": {"-x"},
		"MissingValue": {"--path"},
		"BadNumber":    {"--limit=ten"},
	}

	for name, raw := range tests {
		t.Run(name, func(tst *testing.T) {
			if _, err := command.NewParser(testFlagSet()).Parse(raw); !errors.Is(err, data.ErrInvalid) {
				tst.Errorf("Expected ErrInvalid, got %v", err)
			}
		})
	}

	required := &command.CommandFlagSet{
		Flags: map[string]*command.CommandFlag{
			"name": {Name: "name", Type: "string", Required: true},
		},
	}
	if _, err := command.NewParser(required).Parse(nil); !errors.Is(err, data.ErrInvalid) {
		t.Errorf("Expected ErrInvalid for missing required flag, got %v", err)
	}
}
