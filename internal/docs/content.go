package docs

const fence = "```"

type article struct {
	title   string
	summary string
	body    string
}

var articles = []article{
	{"Quick Start", "Getting started with guidebook", quickStart},
	{"Configuration", "guide.yaml fields and defaults", configuration},
	{"Content Sources", "Topic directories and records files", sources},
	{"Formats", "Output formats and how they are chosen", formats},
	{"Hooks", "The post-build hook and its variables", hooks},
	{"Serving", "Preview server, watch mode and MCP", serving},
	{"Build State", "What .guidebook/ holds", buildState},
}

var quickStart = `1. Create a project:

` + fence + `sh
mkdir ruby-guide && cd ruby-guide
guidebook init
` + fence + `

This writes guide.yaml and a topics/ directory with two sample topics.

2. Add topics. Each markdown file in topics/ is one topic, ordered by file name unless front matter sets an order.

3. Preview the plan, then build:

` + fence + `sh
guidebook build --dry-run
guidebook build
` + fence + `

4. Check content for problems before publishing:

` + fence + `sh
guidebook doctor
` + fence

var configuration = `guidebook looks for guide.yaml in the working directory and each parent, so commands work from anywhere inside a project.

` + fence + `yaml
title: A Ruby Guide        # required
source: topics             # required: directory or .yaml/.toml records file
output: dist/guide.html    # default: dist/guide + the format's extension
format: html               # default: inferred from output, else html
include-drafts: false      # build topics marked draft: true
vars:
  PUBLISH_DIR: $PROJECT_ROOT/public
hooks:
  post-build:
    run: cp "$OUTPUT" "$PUBLISH_DIR/"
    timeout: 5             # minutes
serve:
  addr: 127.0.0.1:8080
` + fence + `

Relative paths resolve against the directory holding guide.yaml.

## Validation

- title and source must be set, and source must exist
- format must be one of html, markdown, text, terminal
- var names must be identifiers and must not shadow a built-in
- a post-build hook must have a run command`

var sources = `## Topic directories

Every .md file in the directory is a topic. The title comes from, in order:

- front matter title
- a leading # heading, which is then removed from the body
- the file name, without a numeric prefix

` + fence + `markdown
---
title: Blocks and Procs
order: 3
draft: false
---
A block is a chunk of code passed to a method.
` + fence + `

Topics sort by order, then by file name.

## Records files

A .yaml or .toml file can list topics directly. Each entry has a title and either a body or a file relative to the records file.

` + fence + `toml
[[topic]]
title = "Syntax"
body = "Ruby uses end to close blocks."

[[topic]]
title = "Loops"
file = "topics/loops.md"
` + fence

var formats = `## Formats

- html: a standalone page with a linked table of contents
- markdown: a single markdown document with anchors
- text: plain text with numbered sections
- terminal: styled text for reading in a terminal

The format comes from --format, then format in guide.yaml, then the output extension (.html, .md, .txt). Output is written atomically, so a failed build never leaves a half-written file.

Rendering is deterministic: the same topics always produce the same bytes.`

var hooks = `The post-build hook runs after the output is written, via bash in the project root.

These variables expand in the command and are exported as GUIDE_NAME:

- $TITLE, $OUTPUT, $FORMAT
- $TOPIC_COUNT, $BUILD_ID, $PROJECT_ROOT

Custom vars from guide.yaml expand in declaration order and can use built-ins and earlier vars.

` + fence + `yaml
hooks:
  post-build:
    run: rsync -a "$OUTPUT" docs@example.org:/srv/guide/
` + fence + `

Output is shown and also saved to .guidebook/logs/post-build.log. A non-zero exit fails the build; guidebook doctor shows the log tail.`

var serving = `## Preview server

guidebook serve starts an HTTP server with the rendered guide at /, single topics at /topics/{anchor}, the outline at /outline.json and keyword search at /search?q=.

With --watch, edits to topics or guide.yaml reload the guide without restarting.

## Watch

guidebook watch rebuilds the output file whenever a topic or guide.yaml changes. Bursts of events are coalesced into one build.

## MCP

guidebook mcp serves the guide over stdio to MCP clients, with tools list_topics, read_topic, search_guide and get_outline, and the resources guide://outline and guide://topics/{anchor}. With --watch it reloads topics the same way serve does.`

var buildState = `Each build records its progress in .guidebook/ at the project root.

- build.json: build id, status, current step, format, output path, topic count and the sha256 of the output
- timing.json: start, end and duration of each step
- logs/post-build.log: output of the last hook run

guidebook status prints the last build. Add .guidebook/ to .gitignore.`
