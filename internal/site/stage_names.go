package site

// StageName is a strongly-typed identifier for a build stage. All canonical
// stages are declared as constants here for compile-time safety.
type StageName string

// Canonical stage names.
const (
	StagePrepareOutput  StageName = "prepare_output"
	StageDiscoverPosts  StageName = "discover_posts"
	StageGenerateConfig StageName = "generate_config"
	StageCopyContent    StageName = "copy_content"
	StageRunHugo        StageName = "run_hugo"
	StageWriteFeeds     StageName = "write_feeds"
	StageWriteReport    StageName = "write_report"
)

// StageDef pairs a stage name with its executing function.
type StageDef struct {
	Name StageName
	Fn   Stage
}
