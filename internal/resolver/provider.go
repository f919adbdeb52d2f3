package resolver

import "strings"

// refMarkers lists the path segments different code-hosting providers use
// to introduce a "<ref>/<file_path>" tail after "owner/repo", in the order
// they are tried. Grounded on the provider URL conventions for GitHub,
// GitLab, Gitea/Codeberg and their self-hosted variants.
var refMarkers = []string{"/blob/", "/-/blob/", "/-/blame/", "/blame/", "/src/branch/"}

// providerPath is owner_repo_path split into its component parts.
type providerPath struct {
	Owner    string
	Repo     string
	Ref      string
	FilePath string
}

// parseProviderPath splits a ProviderPassthrough owner_repo_path into
// owner, repo, an optional ref, and an optional file path. Inputs with no
// recognized ref marker are treated as a bare "owner/repo".
func parseProviderPath(ownerRepoPath string) providerPath {
	for _, marker := range refMarkers {
		if idx := strings.Index(ownerRepoPath, marker); idx != -1 {
			head := ownerRepoPath[:idx]
			tail := ownerRepoPath[idx+len(marker):]
			owner, repo := splitOwnerRepo(head)

			refAndPath := strings.SplitN(tail, "/", 2)
			ref := refAndPath[0]
			filePath := ""
			if len(refAndPath) == 2 {
				filePath = refAndPath[1]
			}
			return providerPath{Owner: owner, Repo: repo, Ref: ref, FilePath: filePath}
		}
	}

	owner, repo := splitOwnerRepo(ownerRepoPath)
	return providerPath{Owner: owner, Repo: repo}
}

func splitOwnerRepo(s string) (owner, repo string) {
	parts := strings.SplitN(strings.Trim(s, "/"), "/", 2)
	if len(parts) == 2 {
		return parts[0], parts[1]
	}
	if len(parts) == 1 {
		return "", parts[0]
	}
	return "", ""
}

// parseFragmentLine extracts a starting line number from a provider
// fragment. GitHub/Gitea-style "L42" or "L10-L20" yield the first number;
// Bitbucket-style "lines-5:10" or "lines-10-20" yield the first number too.
func parseFragmentLine(fragment string) *int {
	if fragment == "" {
		return nil
	}

	var numStr string
	switch {
	case strings.HasPrefix(fragment, "L"):
		rest := strings.TrimPrefix(fragment, "L")
		numStr = strings.SplitN(rest, "-", 2)[0]
		numStr = strings.TrimPrefix(numStr, "L")
	case strings.HasPrefix(fragment, "lines-"):
		rest := strings.TrimPrefix(fragment, "lines-")
		if strings.Contains(rest, ":") {
			numStr = strings.SplitN(rest, ":", 2)[0]
		} else {
			numStr = strings.SplitN(rest, "-", 2)[0]
		}
	default:
		return nil
	}

	n := 0
	for _, r := range numStr {
		if r < '0' || r > '9' {
			return nil
		}
		n = n*10 + int(r-'0')
	}
	if numStr == "" {
		return nil
	}
	return &n
}
