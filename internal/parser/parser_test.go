package parser

import "testing"

func intp(n int) *int { return &n }

func TestParse_PartialPath(t *testing.T) {
	cases := []struct {
		name string
		url  string
		want Request
	}{
		{
			name: "bare filename",
			url:  "srcuri://README.md",
			want: Request{Kind: KindPartialPath, Path: "README.md"},
		},
		{
			name: "filename with line",
			url:  "srcuri://file.txt:10",
			want: Request{Kind: KindPartialPath, Path: "file.txt", Line: intp(10)},
		},
		{
			name: "filename with embedded colons and line:col",
			url:  "srcuri://file:with:colons.txt:10:5",
			want: Request{Kind: KindPartialPath, Path: "file:with:colons.txt", Line: intp(10), Col: intp(5)},
		},
		{
			name: "two segment path with no further slash stays PartialPath",
			url:  "srcuri://myproj/file.rs:42",
			want: Request{Kind: KindPartialPath, Path: "myproj/file.rs", Line: intp(42)},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req, err := Parse(tc.url)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			assertRequestEqual(t, tc.want, *req)
		})
	}
}

func TestParse_WorkspacePath(t *testing.T) {
	req, err := Parse("srcuri://myproj/src/main.rs:42:10")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertRequestEqual(t, Request{
		Kind:      KindWorkspacePath,
		Workspace: "myproj",
		Path:      "src/main.rs",
		Line:      intp(42),
		Col:       intp(10),
	}, *req)
}

func TestParse_WorkspacePath_WithQuery(t *testing.T) {
	req, err := Parse("srcuri://myproj/src/main.rs?branch=feature")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertRequestEqual(t, Request{
		Kind:      KindWorkspacePath,
		Workspace: "myproj",
		Path:      "src/main.rs",
		GitRef:    GitRef{Kind: RefBranch, Value: "feature"},
	}, *req)
}

func TestParse_FullPath(t *testing.T) {
	req, err := Parse("srcuri:///etc/hosts:1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertRequestEqual(t, Request{
		Kind:         KindFullPath,
		AbsolutePath: "/etc/hosts",
		Line:         intp(1),
	}, *req)
}

func TestParse_FullPath_WindowsDriveLetter(t *testing.T) {
	req, err := Parse("srcuri:///C:/Users/x/a.txt:3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertRequestEqual(t, Request{
		Kind:         KindFullPath,
		AbsolutePath: "/C:/Users/x/a.txt",
		Line:         intp(3),
	}, *req)
}

func TestParse_ProviderPassthrough(t *testing.T) {
	req, err := Parse("srcuri://github.com/owner/repo/blob/main/file.rs#L42")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertRequestEqual(t, Request{
		Kind:          KindProviderPassthrough,
		ProviderHost:  "github.com",
		OwnerRepoPath: "owner/repo/blob/main/file.rs",
		Fragment:      "L42",
	}, *req)
}

func TestParse_ProviderPassthrough_WorkspaceOverride(t *testing.T) {
	req, err := Parse("srcuri://github.com/owner/repo?workspace=my.dotted.name")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertRequestEqual(t, Request{
		Kind:              KindProviderPassthrough,
		ProviderHost:      "github.com",
		OwnerRepoPath:     "owner/repo",
		WorkspaceOverride: "my.dotted.name",
	}, *req)
}

func TestParse_LineColBoundaries(t *testing.T) {
	cases := []struct {
		name string
		url  string
		want Request
	}{
		{
			name: "col exceeds 120 rejects entire suffix",
			url:  "srcuri://proj/file.rs:42:200",
			want: Request{Kind: KindPartialPath, Path: "proj/file.rs:42:200"},
		},
		{
			name: "col at boundary 120 is accepted",
			url:  "srcuri://proj/file.rs:42:120",
			want: Request{Kind: KindPartialPath, Path: "proj/file.rs", Line: intp(42), Col: intp(120)},
		},
		{
			name: "zero line is not positive, suffix rejected",
			url:  "srcuri://file.rs:0:5",
			want: Request{Kind: KindPartialPath, Path: "file.rs:0:5"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req, err := Parse(tc.url)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			assertRequestEqual(t, tc.want, *req)
		})
	}
}

func TestParse_QueryPrecedence(t *testing.T) {
	req, err := Parse("srcuri://myproj/file.rs?branch=main&commit=abc123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.GitRef.Kind != RefBranch || req.GitRef.Value != "main" {
		t.Fatalf("expected first-occurring key (branch) to win, got %+v", req.GitRef)
	}
}

func TestParse_Malformed(t *testing.T) {
	cases := []string{
		"",
		"not-a-srcuri-url",
		"srcuri:",
		"srcuri:/single-slash",
	}
	for _, url := range cases {
		if _, err := Parse(url); err == nil {
			t.Errorf("expected error for %q", url)
		}
	}
}

func assertRequestEqual(t *testing.T, want, got Request) {
	t.Helper()
	if want.Kind != got.Kind {
		t.Errorf("Kind: want %v, got %v", want.Kind, got.Kind)
	}
	if want.Path != got.Path {
		t.Errorf("Path: want %q, got %q", want.Path, got.Path)
	}
	if want.Workspace != got.Workspace {
		t.Errorf("Workspace: want %q, got %q", want.Workspace, got.Workspace)
	}
	if want.AbsolutePath != got.AbsolutePath {
		t.Errorf("AbsolutePath: want %q, got %q", want.AbsolutePath, got.AbsolutePath)
	}
	if want.ProviderHost != got.ProviderHost {
		t.Errorf("ProviderHost: want %q, got %q", want.ProviderHost, got.ProviderHost)
	}
	if want.OwnerRepoPath != got.OwnerRepoPath {
		t.Errorf("OwnerRepoPath: want %q, got %q", want.OwnerRepoPath, got.OwnerRepoPath)
	}
	if want.Fragment != got.Fragment {
		t.Errorf("Fragment: want %q, got %q", want.Fragment, got.Fragment)
	}
	if want.WorkspaceOverride != got.WorkspaceOverride {
		t.Errorf("WorkspaceOverride: want %q, got %q", want.WorkspaceOverride, got.WorkspaceOverride)
	}
	if !intEq(want.Line, got.Line) {
		t.Errorf("Line: want %v, got %v", derefOrNil(want.Line), derefOrNil(got.Line))
	}
	if !intEq(want.Col, got.Col) {
		t.Errorf("Col: want %v, got %v", derefOrNil(want.Col), derefOrNil(got.Col))
	}
	if want.GitRef != got.GitRef {
		t.Errorf("GitRef: want %+v, got %+v", want.GitRef, got.GitRef)
	}
}

func intEq(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func derefOrNil(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}
