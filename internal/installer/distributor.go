package installer

// Distributor is a JDK distribution provider.
type Distributor interface {
	Name() string
	// Vendor is the lowercase identifier used in installation names.
	Vendor() string
	AvailableVersions() ([]JavaRelease, error)
	DownloadInfo(version, osName, arch string) (*DownloadInfo, error)
}

// JavaRelease is an installable major release.
type JavaRelease struct {
	Version string
	IsLTS   bool
}

// DownloadInfo describes one downloadable JDK archive.
type DownloadInfo struct {
	URL            string
	Checksum       string
	ChecksumAlgo   string
	Size           int64
	FileName       string
	OpenJDKVersion string
}
