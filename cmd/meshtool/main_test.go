package main

import (
	"testing"

	"github.com/Faultbox/meshnorm/internal/config"
	"github.com/Faultbox/meshnorm/internal/extract"
)

func TestExtractOptions(t *testing.T) {
	cfg := config.Default()
	cfg.Extract.UVSet = "st (3/12)"
	cfg.Extract.LoadMode = "first"
	cfg.Extract.Models = []string{"chair"}
	cfg.Extract.Workers = 3
	cfg.Filter.Ignore = []string{"proxy"}

	opts, err := extractOptions(cfg, "room.yaml")
	if err != nil {
		t.Fatalf("extractOptions: %v", err)
	}
	if opts.Mesh.UVSet != "st" {
		t.Errorf("UV set = %q, want st", opts.Mesh.UVSet)
	}
	if opts.LoadMode != extract.LoadFirstFound {
		t.Errorf("load mode = %v", opts.LoadMode)
	}
	if !opts.Mesh.ConformYUp || !opts.Mesh.ReadFloat2AsUV {
		t.Errorf("expected defaults carried over, got %+v", opts.Mesh)
	}
	if opts.Workers != 3 || opts.Source != "room.yaml" {
		t.Errorf("unexpected options %+v", opts)
	}
	if len(opts.Filter.Ignore) != 1 || opts.Filter.Ignore[0] != "proxy" {
		t.Errorf("filter = %+v", opts.Filter)
	}

	cfg.Extract.LoadMode = "some"
	if _, err := extractOptions(cfg, "room.yaml"); err == nil {
		t.Error("expected error for unknown load mode")
	}
}
