package promote

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Masterminds/semver/v3"

	"github.com/gitopsware/gitopsctl/pkg/utils/notify"
)

// ErrNoKustomizations is returned when the staging directory contains no kustomization files.
var ErrNoKustomizations = errors.New("no kustomization files found in staging directory")

// Promotion describes a single staging tag that differs from its base counterpart.
type Promotion struct {
	App      string
	Image    ImageRef
	Current  ImageRef
	BaseFile string
}

// Direction reports whether the promotion is a semver upgrade or downgrade.
// Returns the empty string when either tag is not valid semver or both parse equal.
func (p Promotion) Direction() string {
	current, err := semver.NewVersion(p.Current.Tag)
	if err != nil {
		return ""
	}

	next, err := semver.NewVersion(p.Image.Tag)
	if err != nil {
		return ""
	}

	switch {
	case next.GreaterThan(current):
		return "upgrade"
	case next.LessThan(current):
		return "downgrade"
	default:
		return ""
	}
}

// Plan scans the staging overlay for image overrides, matches them against the
// base workload manifests, and returns the promotions whose tags differ.
// Progress and per-app findings are reported to the writer.
func Plan(stagingDir, baseDir string, writer io.Writer) ([]Promotion, error) {
	kustomizations, err := FindKustomizations(stagingDir)
	if err != nil {
		return nil, err
	}

	if len(kustomizations) == 0 {
		return nil, ErrNoKustomizations
	}

	notify.Successf(writer, "found %d kustomization files", len(kustomizations))

	var promotions []Promotion

	for _, kustFile := range kustomizations {
		app := filepath.Base(filepath.Dir(kustFile))

		notify.Activityf(writer, "processing app: %s", app)

		stagingImages, err := ExtractNewTags(kustFile)
		if err != nil {
			notify.Warningf(writer, "%v", err)

			continue
		}

		if len(stagingImages) == 0 {
			notify.Infof(writer, "no image overrides found in %s", app)

			continue
		}

		manifests, err := FindWorkloadManifests(baseDir, app)
		if err != nil {
			return nil, err
		}

		if len(manifests) == 0 {
			notify.Warningf(writer, "no base deployment files found for %s", app)

			continue
		}

		appPromotions, err := matchImages(app, stagingImages, manifests, writer)
		if err != nil {
			return nil, err
		}

		promotions = append(promotions, appPromotions...)
	}

	return promotions, nil
}

// matchImages compares staging overrides against the base manifests of one app.
func matchImages(
	app string,
	stagingImages []ImageRef,
	manifests []string,
	writer io.Writer,
) ([]Promotion, error) {
	var promotions []Promotion

	for _, stagingImage := range stagingImages {
		match, baseFile, err := findBaseImage(stagingImage.Name, manifests)
		if err != nil {
			return nil, err
		}

		switch {
		case baseFile == "":
			notify.Warningf(writer, "image %s not found in base deployments", stagingImage.Name)
		case match.Tag == stagingImage.Tag:
			notify.Successf(writer, "%s versions match (%s)", stagingImage.Name, stagingImage.Tag)
		default:
			notify.Infof(writer, "version difference for %s: base %s, staging %s",
				stagingImage.Name, match.Tag, stagingImage.Tag)

			promotions = append(promotions, Promotion{
				App:      app,
				Image:    stagingImage,
				Current:  match,
				BaseFile: baseFile,
			})
		}
	}

	return promotions, nil
}

// findBaseImage locates the first base manifest containing an image with the given name.
func findBaseImage(name string, manifests []string) (ImageRef, string, error) {
	for _, manifest := range manifests {
		content, err := readFile(manifest)
		if err != nil {
			return ImageRef{}, "", err
		}

		for _, ref := range ExtractImages(content) {
			if ref.Name == name {
				return ref, manifest, nil
			}
		}
	}

	return ImageRef{}, "", nil
}

func readFile(path string) (string, error) {
	content, err := os.ReadFile(path) //nolint:gosec // path comes from a directory walk
	if err != nil {
		return "", fmt.Errorf("read manifest %s: %w", path, err)
	}

	return string(content), nil
}
