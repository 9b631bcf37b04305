package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const starterConfig = `# docsite configuration
site:
  title: My Project Docs
  tagline: Guides and reference
  url: https://example.github.io
  base_url: /my-project/
  organization_name: example
  project_name: my-project
  deployment_branch: gh-pages

docs:
  path: docs
  route_base_path: docs
  sidebars: sidebars.yaml
  edit_url: https://github.com/example/my-project/edit/main/
  show_last_update: true

article_footer:
  title: Help improve these docs
  links:
    - label: Contribute on GitHub
      href: https://github.com/example/my-project
    - label: Join the community chat
      href: https://discord.gg/example

footer:
  style: dark
  links:
    - title: Docs
      items:
        - label: Introduction
          to: /docs/intro
    - title: Community
      items:
        - label: GitHub
          href: https://github.com/example/my-project
  copyright: Copyright © Example contributors
`

const starterSidebars = `# Sidebar navigation. Order is display order.
docs:
  - intro
  - type: category
    label: Guides
    collapsed: false
    items:
      - type: autogenerated
        dirName: guides
  - type: link
    label: GitHub
    href: https://github.com/example/my-project
`

const starterIntro = `---
id: intro
sidebar_position: 1
---

# Introduction

Welcome to the documentation.
`

const starterGuide = `---
sidebar_label: First steps
---

# Getting started

Read the [introduction](../intro.md) first.
`

// Init scaffolds docsite.yaml, sidebars.yaml and a minimal docs tree in dir.
// Existing files are only overwritten when force is set.
func Init(dir string, force bool) ([]string, error) {
	files := []struct {
		rel     string
		content string
	}{
		{"docsite.yaml", starterConfig},
		{defaultSidebars, starterSidebars},
		{filepath.Join(defaultDocsPath, "intro.md"), starterIntro},
		{filepath.Join(defaultDocsPath, "guides", "getting-started.md"), starterGuide},
	}

	if !force {
		for _, f := range files {
			p := filepath.Join(dir, f.rel)
			if _, err := os.Stat(p); err == nil {
				return nil, fmt.Errorf("%s already exists (use --force to overwrite)", p)
			}
		}
	}

	written := make([]string, 0, len(files))
	for _, f := range files {
		p := filepath.Join(dir, f.rel)
		if err := os.MkdirAll(filepath.Dir(p), 0o750); err != nil {
			return written, fmt.Errorf("create directory for %s: %w", p, err)
		}
		if err := os.WriteFile(p, []byte(f.content), 0o600); err != nil {
			return written, fmt.Errorf("write %s: %w", p, err)
		}
		written = append(written, p)
	}
	return written, nil
}
