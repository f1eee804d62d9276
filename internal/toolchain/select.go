package toolchain

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// SelectVersion returns requested when it is present in idx, or the highest
// semantic version when requested is empty. Labels that are not strict
// semantic versions (e.g. "master") never win the latest selection.
func SelectVersion(idx Index, requested string) (string, error) {
	if requested != "" {
		if _, ok := idx[requested]; !ok {
			return "", fmt.Errorf("%w: provided version %s is not found from existing versions: [%s]",
				ErrVersionNotFound, requested, strings.Join(idx.Versions(), ", "))
		}
		return requested, nil
	}

	latest, ok := Latest(idx)
	if !ok {
		return "", fmt.Errorf("get latest zig version: %w", ErrNoValidVersion)
	}
	return latest, nil
}

// Latest returns the highest semantic version label in idx. Equal precedence
// resolves to the label that sorts last.
func Latest(idx Index) (string, bool) {
	type candidate struct {
		label   string
		version *semver.Version
	}

	var candidates []candidate
	for _, label := range idx.Versions() {
		v, err := semver.StrictNewVersion(label)
		if err != nil {
			continue
		}
		candidates = append(candidates, candidate{label: label, version: v})
	}
	if len(candidates) == 0 {
		return "", false
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].version.LessThan(candidates[j].version)
	})
	return candidates[len(candidates)-1].label, true
}

type archiveRef struct {
	Tarball json.RawMessage `json:"tarball"`
}

// ResolveDownloadURL looks up the archive URL for version on platformKey.
func ResolveDownloadURL(idx Index, version, platformKey string) (string, error) {
	entry, ok := idx[version]
	if !ok {
		return "", fmt.Errorf("%w: version %s is not in the index", ErrEntryNotFound, version)
	}

	raw, ok := entry[platformKey]
	if !ok {
		return "", fmt.Errorf("%w: get zig download url for version %s (%s)", ErrPlatformNotFound, version, platformKey)
	}

	var ref archiveRef
	if err := json.Unmarshal(raw, &ref); err != nil {
		return "", fmt.Errorf("%w: entry %s/%s is not an object", ErrMalformedURL, version, platformKey)
	}
	var url string
	if len(ref.Tarball) == 0 || json.Unmarshal(ref.Tarball, &url) != nil {
		return "", fmt.Errorf("%w: tarball for %s/%s is not a string", ErrMalformedURL, version, platformKey)
	}
	if strings.TrimSpace(url) == "" {
		return "", fmt.Errorf("%w: tarball for %s/%s is empty", ErrMalformedURL, version, platformKey)
	}
	return url, nil
}

// Ordered returns the labels of idx newest first: labels that are not
// semantic versions (e.g. "master") lead in name order, followed by releases
// in descending precedence.
func Ordered(idx Index) []string {
	var named []string
	var releases []*semver.Version
	labels := make(map[*semver.Version]string)
	for _, label := range idx.Versions() {
		v, err := semver.StrictNewVersion(label)
		if err != nil {
			named = append(named, label)
			continue
		}
		releases = append(releases, v)
		labels[v] = label
	}
	sort.SliceStable(releases, func(i, j int) bool {
		return releases[j].LessThan(releases[i])
	})

	out := named
	for _, v := range releases {
		out = append(out, labels[v])
	}
	return out
}
