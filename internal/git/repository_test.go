package git

import (
	"context"
	"testing"
)

func TestOpenWithCommander_Defaults(t *testing.T) {
	repo := OpenWithCommander(NewMockCommander(), OpenOptions{Path: "/repo"})

	if repo.Root != "/repo" {
		t.Errorf("Root = %q, want /repo", repo.Root)
	}
	if repo.Remote != DefaultRemote || repo.Mainline != DefaultMainline {
		t.Errorf("Remote/Mainline = %q/%q, want defaults", repo.Remote, repo.Mainline)
	}
	if repo.Paths().limit != DefaultConcurrency {
		t.Errorf("Paths().limit = %d, want %d", repo.Paths().limit, DefaultConcurrency)
	}
}

func TestOpenWithCommander_BindsContext(t *testing.T) {
	mock := NewMockCommander().
		On("", "fetch", "upstream").
		On("", "log", "--no-color", "--format=%s", "upstream/main..upstream/release-1.x", "--").
		On("hash<abc1234> ref<> message<Add feature> date<2024-03-01>", logArgs("v1.0.0..")...)

	repo := OpenWithCommander(mock, OpenOptions{Remote: "upstream", Mainline: "main", Concurrency: 2})

	records, err := repo.History().ListCommits(context.Background(), ListOptions{
		From:                   "v1.0.0",
		DuplicateCheckBranches: []string{"release-1.x"},
	})
	if err != nil {
		t.Fatalf("ListCommits: %v", err)
	}
	if len(records) != 1 || records[0].SHA != "abc1234" {
		t.Fatalf("ListCommits = %#v", records)
	}
	if repo.Paths().limit != 2 {
		t.Errorf("Paths().limit = %d, want 2", repo.Paths().limit)
	}
}
