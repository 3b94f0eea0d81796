package coco

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ResolveImagePath resolves an image file_name against the directory of
// the dataset file it came from. Absolute file names are returned
// unchanged.
func ResolveImagePath(datasetPath, fileName string) string {
	if filepath.IsAbs(fileName) {
		return fileName
	}
	return filepath.Join(filepath.Dir(datasetPath), fileName)
}

// InDirectoryTree reports whether path resides under dir after both are
// resolved to absolute, cleaned forms.
func InDirectoryTree(path, dir string) (bool, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false, err
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return false, err
	}
	rel, err := filepath.Rel(absDir, absPath)
	if err != nil {
		return false, nil
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)), nil
}

// DatasetImagePath computes the file_name to record for an image in a
// dataset written to datasetPath. With forceAbsolute the absolute image
// path is always used. Otherwise images that live under the dataset
// file's directory get a relative path, and everything else stays
// absolute.
func DatasetImagePath(datasetPath, imagePath string, forceAbsolute bool) (string, error) {
	absImage, err := filepath.Abs(imagePath)
	if err != nil {
		return "", err
	}
	if forceAbsolute {
		return absImage, nil
	}

	dir := filepath.Dir(datasetPath)
	in, err := InDirectoryTree(absImage, dir)
	if err != nil {
		return "", err
	}
	if !in {
		return absImage, nil
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(absDir, absImage)
	if err != nil {
		return "", fmt.Errorf("relativize %s against %s: %w", absImage, absDir, err)
	}
	return rel, nil
}
