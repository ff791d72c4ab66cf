// Package vidgrab extracts video links from JavaScript-rendered listing
// pages and hands them to an external download tool. Listing pages are
// rendered in a headless browser, video cards are parsed out of the
// resulting HTML, and results are cached per source URL so repeated runs
// do not re-render pages they have already seen.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., rod/, goquery/, sqlite/).
package vidgrab

// Origin is the site origin prepended to video paths found on listing pages.
const Origin = "https://vkvideo.ru"
