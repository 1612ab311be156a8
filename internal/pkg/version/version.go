// Package version 링커 플래그로 주입된 빌드 정보와 실행 환경 정보를 제공합니다.
//
//	go build -ldflags "-X github.com/darkkaiser/long-process/internal/pkg/version.appVersion=v1.2.0 \
//	  -X github.com/darkkaiser/long-process/internal/pkg/version.gitCommitHash=$(git rev-parse HEAD)"
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
	"sync"
)

const unknown = "unknown"

// -ldflags "-X ..." 로 주입된다. 직접 읽지 말고 Get을 사용한다.
var (
	appVersion    = ""
	gitCommitHash = ""
	gitTreeState  = "" // clean | dirty
	buildDate     = ""
	buildNumber   = ""
)

// readBuildInfo 테스트에서 교체할 수 있다.
var readBuildInfo = debug.ReadBuildInfo

// Info 빌드 및 실행 환경 정보입니다.
type Info struct {
	Version     string `json:"version"`
	Commit      string `json:"commit"`
	BuildDate   string `json:"build_date"`
	BuildNumber string `json:"build_number"`
	GoVersion   string `json:"go_version"`
	OS          string `json:"os"`
	Arch        string `json:"arch"`
	DirtyBuild  bool   `json:"dirty_build"`
}

var get = sync.OnceValue(func() Info {
	return enrich(Info{
		Version:     strings.TrimSpace(appVersion),
		Commit:      strings.TrimSpace(gitCommitHash),
		BuildDate:   strings.TrimSpace(buildDate),
		BuildNumber: strings.TrimSpace(buildNumber),
		DirtyBuild:  strings.EqualFold(strings.TrimSpace(gitTreeState), "dirty"),
	})
})

// Get 애플리케이션의 빌드 정보를 반환합니다.
func Get() Info {
	return get()
}

// enrich 비어 있는 필드를 실행 환경과 모듈 VCS 메타데이터로 채웁니다.
func enrich(bi Info) Info {
	if bi.GoVersion == "" {
		bi.GoVersion = runtime.Version()
	}
	if bi.OS == "" {
		bi.OS = runtime.GOOS
	}
	if bi.Arch == "" {
		bi.Arch = runtime.GOARCH
	}

	// ldflags 없이 빌드된 경우(go run 등)에도 최소한의 정보를 얻는다.
	if val, ok := readBuildInfo(); ok {
		for _, setting := range val.Settings {
			switch setting.Key {
			case "vcs.revision":
				if bi.Commit == "" {
					bi.Commit = setting.Value
				}
			case "vcs.time":
				if bi.BuildDate == "" {
					bi.BuildDate = setting.Value
				}
			case "vcs.modified":
				if setting.Value == "true" {
					bi.DirtyBuild = true
				}
			}
		}

		if bi.Version == "" && val.Main.Version != "" && val.Main.Version != "(devel)" {
			bi.Version = val.Main.Version
		}
	}

	if bi.Version == "" {
		bi.Version = unknown
	}
	if bi.Commit == "" {
		bi.Commit = unknown
	}

	return bi
}

// Fields 구조적 로깅용 필드를 반환합니다.
func (i Info) Fields() map[string]any {
	return map[string]any{
		"version":      i.Version,
		"commit":       i.Commit,
		"build_date":   i.BuildDate,
		"build_number": i.BuildNumber,
		"go_version":   i.GoVersion,
		"os":           i.OS,
		"arch":         i.Arch,
		"dirty_build":  i.DirtyBuild,
	}
}

// String 예: "v1.2.0+dirty (commit: f25b8bf, build: 42, go_version: go1.24.0, os: linux, arch: amd64)"
func (i Info) String() string {
	v := i.Version
	if v == "" {
		v = unknown
	}
	if i.DirtyBuild {
		v += "+dirty"
	}

	var details []string
	if i.Commit != "" && i.Commit != unknown {
		details = append(details, "commit: "+shortCommit(i.Commit))
	}
	if i.BuildNumber != "" {
		details = append(details, "build: "+i.BuildNumber)
	}
	if i.BuildDate != "" {
		details = append(details, "date: "+i.BuildDate)
	}
	if i.GoVersion != "" {
		details = append(details, "go_version: "+i.GoVersion)
	}
	if i.OS != "" {
		details = append(details, "os: "+i.OS)
	}
	if i.Arch != "" {
		details = append(details, "arch: "+i.Arch)
	}

	if len(details) == 0 {
		return v
	}
	return fmt.Sprintf("%s (%s)", v, strings.Join(details, ", "))
}

func shortCommit(commit string) string {
	if len(commit) > 7 {
		return commit[:7]
	}
	return commit
}
