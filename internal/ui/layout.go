package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which compact mode is used.
	LayoutCompactWidth = 80

	// LayoutWideWidth is the minimum width to show the last-watered column.
	LayoutWideWidth = 100
)

// Chrome rows around the list: header, command bar and banner.
const chromeRows = 3

// SkeletonRows is the number of placeholder rows shown before the first load.
const SkeletonRows = 6

// NoticeTTL is how long a success notice stays in the header.
const NoticeTTL = 4 * time.Second
