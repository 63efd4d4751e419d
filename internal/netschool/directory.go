// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 NetSchool Go Contributors

package netschool

import (
	"context"
	"log/slog"

	"github.com/gobwas/glob"
	"github.com/samber/oops"

	"github.com/netschool-go/netschool/internal/webclient"
)

// Directory reads the portal's public school directory. It needs no login.
type Directory struct {
	web    webclient.Anonymous
	logger *slog.Logger
}

// NewDirectory creates a Directory over an anonymous handle.
func NewDirectory(web webclient.Anonymous, logger *slog.Logger) *Directory {
	if logger == nil {
		logger = slog.Default()
	}
	return &Directory{web: web, logger: logger.With("component", "directory")}
}

// List returns every school in portal order.
func (d *Directory) List(ctx context.Context) ([]SchoolInfo, error) {
	ctx, span := tracer.Start(ctx, "netschool.Directory.List")
	defer span.End()

	var schools []SchoolInfo
	if err := fetchJSON(ctx, d.web.Get(pathSchools), pathSchools, &schools); err != nil {
		return nil, err
	}
	d.logger.DebugContext(ctx, "listed schools", "count", len(schools))
	return schools, nil
}

// FindByName returns the first school whose name equals name exactly.
// Names are compared byte for byte with no normalization.
func (d *Directory) FindByName(ctx context.Context, name string) (SchoolInfo, error) {
	schools, err := d.List(ctx)
	if err != nil {
		return SchoolInfo{}, oops.With("school_name", name).Wrap(err)
	}
	for _, school := range schools {
		if school.Name == name {
			return school, nil
		}
	}
	return SchoolInfo{}, oops.Code(CodeSchoolNotFound).
		With("school_name", name).
		With("schools", len(schools)).
		Errorf("school %q not found", name)
}

// Match returns the schools whose names match a glob pattern such as
// "Lyceum *". The pattern is compiled before any request is made.
func (d *Directory) Match(ctx context.Context, pattern string) ([]SchoolInfo, error) {
	g, err := glob.Compile(pattern)
	if err != nil {
		return nil, oops.Code(CodeInvalidPattern).With("pattern", pattern).Wrap(err)
	}

	schools, err := d.List(ctx)
	if err != nil {
		return nil, oops.With("pattern", pattern).Wrap(err)
	}
	matched := make([]SchoolInfo, 0, len(schools))
	for _, school := range schools {
		if g.Match(school.Name) {
			matched = append(matched, school)
		}
	}
	return matched, nil
}
