package installer

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
)

const adoptiumAPIBase = "https://api.adoptium.net/v3"

// AdoptiumDistributor serves Eclipse Temurin builds from the Adoptium API.
type AdoptiumDistributor struct{}

func NewAdoptiumDistributor() *AdoptiumDistributor {
	return &AdoptiumDistributor{}
}

func (a *AdoptiumDistributor) Name() string {
	return "Eclipse Adoptium"
}

func (a *AdoptiumDistributor) Vendor() string {
	return "temurin"
}

type adoptiumReleasesResponse struct {
	AvailableLTSReleases     []int `json:"available_lts_releases"`
	AvailableReleases        []int `json:"available_releases"`
	MostRecentLTS            int   `json:"most_recent_lts"`
	MostRecentFeatureRelease int   `json:"most_recent_feature_release"`
}

type adoptiumAssetResponse struct {
	Binary struct {
		Package struct {
			Link     string `json:"link"`
			Checksum string `json:"checksum"`
			Size     int64  `json:"size"`
			Name     string `json:"name"`
		} `json:"package"`
	} `json:"binary"`
	Version struct {
		OpenJDKVersion string `json:"openjdk_version"`
		Major          int    `json:"major"`
	} `json:"version"`
}

// AvailableVersions fetches the release list from the Adoptium API. On any
// failure it returns a hardcoded fallback list together with the error so
// callers can still offer something.
func (a *AdoptiumDistributor) AvailableVersions() ([]JavaRelease, error) {
	url := fmt.Sprintf("%s/info/available_releases", adoptiumAPIBase)

	resp, err := http.Get(url)
	if err != nil {
		return fallbackVersions(), fmt.Errorf("API request failed, using fallback versions: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fallbackVersions(), fmt.Errorf("API returned status %d, using fallback versions", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fallbackVersions(), fmt.Errorf("failed to read response, using fallback versions: %w", err)
	}

	var releasesResp adoptiumReleasesResponse
	if err := json.Unmarshal(body, &releasesResp); err != nil {
		return fallbackVersions(), fmt.Errorf("failed to parse response, using fallback versions: %w", err)
	}

	ltsSet := make(map[int]bool)
	for _, v := range releasesResp.AvailableLTSReleases {
		ltsSet[v] = true
	}

	majors := append([]int(nil), releasesResp.AvailableReleases...)
	sort.Sort(sort.Reverse(sort.IntSlice(majors)))

	releases := make([]JavaRelease, 0, len(majors))
	for _, v := range majors {
		releases = append(releases, JavaRelease{
			Version: fmt.Sprintf("%d", v),
			IsLTS:   ltsSet[v],
		})
	}

	return releases, nil
}

func fallbackVersions() []JavaRelease {
	return []JavaRelease{
		{Version: "25", IsLTS: true},
		{Version: "24", IsLTS: false},
		{Version: "23", IsLTS: false},
		{Version: "22", IsLTS: false},
		{Version: "21", IsLTS: true},
		{Version: "20", IsLTS: false},
		{Version: "19", IsLTS: false},
		{Version: "18", IsLTS: false},
		{Version: "17", IsLTS: true},
		{Version: "16", IsLTS: false},
		{Version: "11", IsLTS: true},
		{Version: "8", IsLTS: true},
	}
}

// DownloadInfo fetches the latest asset for a major version on the given
// platform. osName and arch use Go's runtime naming.
func (a *AdoptiumDistributor) DownloadInfo(version, osName, arch string) (*DownloadInfo, error) {
	adoptiumArch := arch
	if arch == "amd64" {
		adoptiumArch = "x64"
	}
	adoptiumOS := osName
	if osName == "darwin" {
		adoptiumOS = "mac"
	}

	url := fmt.Sprintf("%s/assets/latest/%s/hotspot?architecture=%s&image_type=jdk&os=%s&vendor=eclipse",
		adoptiumAPIBase, version, adoptiumArch, adoptiumOS)

	resp, err := http.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to query download URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API returned status %d for version %s", resp.StatusCode, version)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var assets []adoptiumAssetResponse
	if err := json.Unmarshal(body, &assets); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if len(assets) == 0 {
		return nil, fmt.Errorf("no JDK found for Java %s on %s/%s", version, osName, arch)
	}

	asset := assets[0]
	return &DownloadInfo{
		URL:            asset.Binary.Package.Link,
		Checksum:       asset.Binary.Package.Checksum,
		ChecksumAlgo:   "SHA256",
		Size:           asset.Binary.Package.Size,
		FileName:       asset.Binary.Package.Name,
		OpenJDKVersion: asset.Version.OpenJDKVersion,
	}, nil
}
