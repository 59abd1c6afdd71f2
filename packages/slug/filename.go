package slug

// Separator joins the scenario and capture parts of a generated filename.
const Separator = "__"

// GenerateFilename returns the output file stem for a capture, e.g.
// GenerateFilename("Home", "hover on News nav") == "home__hover-on-news-nav".
// The caller appends the extension.
func GenerateFilename(scenarioLabel, captureLabel string) string {
	return Slugify(scenarioLabel) + Separator + Slugify(captureLabel)
}
