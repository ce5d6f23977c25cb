package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/arpit-maurya-P41/test-web-check-in-sub000/pkg/domain/interfaces"
	"github.com/m-mizutani/goerr/v2"
)

// Firestore is the production repository backend. Every entity uses a
// deterministic document ID derived from its natural key, so uniqueness
// is enforced by the store itself via Create.
type Firestore struct {
	client     *firestore.Client
	attendance *attendanceRepository
	submission *submissionRepository
	member     *memberRepository
}

var _ interfaces.Repository = &Firestore{}

type Option func(*Firestore)

// WithCollectionPrefix namespaces all collections, mainly for tests
// sharing one database.
func WithCollectionPrefix(prefix string) Option {
	return func(f *Firestore) {
		f.attendance.collectionPrefix = prefix
		f.submission.collectionPrefix = prefix
		f.member.collectionPrefix = prefix
	}
}

func New(ctx context.Context, projectID, databaseID string, opts ...Option) (*Firestore, error) {
	var client *firestore.Client
	var err error
	if databaseID != "" {
		client, err = firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	} else {
		client, err = firestore.NewClient(ctx, projectID)
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("projectID", projectID), goerr.V("databaseID", databaseID))
	}

	f := &Firestore{
		client:     client,
		attendance: newAttendanceRepository(client),
		submission: newSubmissionRepository(client),
		member:     newMemberRepository(client),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

func (f *Firestore) Attendance() interfaces.AttendanceRepository {
	return f.attendance
}

func (f *Firestore) Submission() interfaces.SubmissionRepository {
	return f.submission
}

func (f *Firestore) Member() interfaces.MemberRepository {
	return f.member
}

func (f *Firestore) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}
