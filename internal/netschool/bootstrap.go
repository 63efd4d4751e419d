// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 NetSchool Go Contributors

package netschool

import (
	"context"
	"errors"
	"net/url"

	"github.com/samber/oops"

	"github.com/netschool-go/netschool/internal/webclient"
	"github.com/netschool-go/netschool/pkg/bigid"
)

// bootstrap fetches the account context that every later call needs:
// the selected student, the current school year, and the assignment type
// names. It performs no retries.
func bootstrap(ctx context.Context, authed webclient.Authenticated, creds Credentials) (Metadata, error) {
	ctx, span := tracer.Start(ctx, "netschool.bootstrap")
	defer span.End()

	studentID, err := fetchStudentID(ctx, authed)
	if err != nil {
		return Metadata{}, err
	}

	var year currentYear
	if err := fetchJSON(ctx, authed.Get(pathCurrentYear), pathCurrentYear, &year); err != nil {
		return Metadata{}, err
	}
	if year.ID == nil {
		return Metadata{}, invalidResponse(errors.New("missing id"), pathCurrentYear)
	}

	var types []assignmentType
	req := authed.Get(pathAssignmentTypes).Query(url.Values{"all": {"false"}})
	if err := fetchJSON(ctx, req, pathAssignmentTypes, &types); err != nil {
		return Metadata{}, err
	}
	names := make(map[bigid.ID]string, len(types))
	for i, t := range types {
		if t.ID == nil || t.Name == nil {
			return Metadata{}, invalidResponse(
				oops.With("index", i).Errorf("assignment type missing id or name"), pathAssignmentTypes)
		}
		names[*t.ID] = *t.Name
	}

	return Metadata{
		studentID:       studentID,
		yearID:          *year.ID,
		assignmentTypes: names,
		credentials:     creds,
	}, nil
}

// fetchStudentID resolves currentStudentId, an index into the students
// list, to that student's id.
func fetchStudentID(ctx context.Context, authed webclient.Authenticated) (bigid.ID, error) {
	var diary diaryInit
	if err := fetchJSON(ctx, authed.Get(pathDiaryInit), pathDiaryInit, &diary); err != nil {
		return bigid.ID{}, err
	}
	if diary.CurrentStudentID == nil {
		return bigid.ID{}, invalidResponse(errors.New("missing currentStudentId"), pathDiaryInit)
	}

	index, ok := diary.CurrentStudentID.Int()
	if !ok || index < 0 || index >= len(diary.Students) {
		return bigid.ID{}, invalidResponse(
			oops.
				With("current_student_id", diary.CurrentStudentID.String()).
				With("students", len(diary.Students)).
				Errorf("current student index out of range"),
			pathDiaryInit)
	}

	student := diary.Students[index]
	if student.StudentID == nil {
		return bigid.ID{}, invalidResponse(oops.With("index", index).Errorf("student missing studentId"), pathDiaryInit)
	}
	return *student.StudentID, nil
}

func fetchJSON(ctx context.Context, req *webclient.Request, path string, v any) error {
	resp, err := req.Send(ctx)
	if err != nil {
		return requestFailed(err, path)
	}
	if err := resp.DecodeJSON(v); err != nil {
		return invalidResponse(err, path)
	}
	return nil
}
