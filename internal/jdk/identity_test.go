package jdk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdentifyVendor(t *testing.T) {
	tests := []struct {
		name    string
		home    string
		version string
		vendor  string
	}{
		{"temurin in path", "/opt/temurin-17", "17.0.5", "Temurin"},
		{"adoptium leaf", "/usr/lib/jvm/adoptium-21", "21.0.1", "Temurin"},
		{"oracle in path", "/opt/oracle/jdk-17", "17.0.1", "Oracle"},
		{"plain jdk- leaf", "/usr/lib/jvm/jdk-17.0.5", "17.0.5", "Oracle"},
		{"corretto leaf", "/usr/lib/jvm/amazon-corretto-17", "17.0.4", "Amazon Corretto"},
		{"zulu leaf", "/opt/zulu17.38.21-ca-jdk17.0.5", "17.0.5", "Zulu"},
		{"graalvm leaf", "/opt/graalvm-ce-java17", "17.0.5", "GraalVM"},
		{"openjdk leaf", "/usr/lib/jvm/openjdk-19", "19", "OpenJDK"},
		{"java- prefix leaf", "/usr/lib/jvm/java-17-openjdk-amd64", "17.0.5", "OpenJDK"},
		{"jdk prefix without dash", "/usr/lib/jvm/jdk8u345", "8u345", "OpenJDK"},
		{"unknown vendor", "/opt/mystery-runtime", "17.0.5", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, vendor := Identify(tt.home, tt.version)
			assert.Equal(t, tt.vendor, vendor)
		})
	}
}

func TestIdentifyName(t *testing.T) {
	tests := []struct {
		name    string
		home    string
		version string
		want    string
	}{
		{"vendor prefix lowercased", "/opt/temurin-17", "17.0.5", "temurin-17.0.5"},
		{"multi word vendor squashed", "/usr/lib/jvm/amazon-corretto-17", "17.0.4", "amazoncorretto-17.0.4"},
		{"unknown vendor uses leaf", "/opt/mystery-runtime", "17.0.5", "mystery-runtime-17.0.5"},
		{"empty version drops suffix", "/opt/temurin-17", "", "temurin"},
		{"underscores become hyphens", "/opt/my_runtime", "11.0.2", "my-runtime-11.0.2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, _ := Identify(tt.home, tt.version)
			assert.Equal(t, tt.want, name)
		})
	}
}

func TestIdentifySamePathSameName(t *testing.T) {
	n1, _ := Identify("/opt/temurin-17", "17.0.5")
	n2, _ := Identify("/opt/temurin-17", "17.0.5")
	assert.Equal(t, n1, n2)
}

// Distinct homes can collide on the derived name. The catalog must keep
// both entries; equality is the path, never the label.
func TestIdentifyNameCollision(t *testing.T) {
	n1, _ := Identify("/opt/temurin-17", "17.0.5")
	n2, _ := Identify("/usr/lib/jvm/temurin-17-copy", "17.0.5")
	assert.Equal(t, n1, n2)

	a := Info{Name: n1, Path: "/opt/temurin-17"}
	b := Info{Name: n2, Path: "/usr/lib/jvm/temurin-17-copy"}
	assert.False(t, a.Same(b))
}
