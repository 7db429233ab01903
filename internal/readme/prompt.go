// Package readme holds the two pure functions at the heart of generation:
// composing the instruction prompt and sanitizing the model's output.
//
// Both are deterministic — no clock, no randomness, no I/O — so their exact
// outputs can be asserted in tests.
package readme

import (
	"fmt"

	"github.com/sakif/readme-studio/internal/model"
)

// Placeholders substituted into the prompt when an input is absent.
// Fixed strings, so the prompt stays byte-identical for identical inputs.
const (
	noDescription    = "No description provided"
	noExistingReadme = "None"
)

// promptTemplate fixes the nine required sections, the HTML-only output
// format, the visual theme, and the "return only the README" instruction.
// The %s slots are: repository URL, description, existing README.
const promptTemplate = `You are an expert software engineer and technical writer. Generate a highly professional, visually appealing, and complete README for this GitHub repository:

Repo: https://github.com/%s
Description: %s
Existing README content (if any): %s

The README must include the following sections in order, with appropriate headings and emojis:
1. 🎯 Project Title
2. 📝 Description
3. ⚡ Features
4. 💻 Installation Guide
5. 🏗️ Project Structure (folder/file explanation)
6. 🛠️ Tech Stack
7. 🤝 Contributing
8. 📄 License
9. ❓ Questions / Contact Info

Requirements:
- Provide the README in HTML format, no markdown.
- Use a black background with bright green headings and light green code blocks.
- Add CSS styling to make headings, paragraphs, lists, and code blocks look professional.
- Include emojis for sections, bullets, or highlights where appropriate.
- Keep it readable, professional, and visually appealing.
- Avoid explanations or content outside the README.

Return only the HTML content.`

// ComposePrompt builds the instruction document for one repository.
//
// Pure function of its inputs: identical (repository, existingReadme) pairs
// always produce byte-identical prompts. An empty description or README is
// replaced with a fixed placeholder rather than left blank, so the model is
// told explicitly that the information is missing.
func ComposePrompt(repo *model.Repository, existingReadme string) string {
	description := repo.Description
	if description == "" {
		description = noDescription
	}

	existing := existingReadme
	if existing == "" {
		existing = noExistingReadme
	}

	return fmt.Sprintf(promptTemplate, repo.FullName, description, existing)
}
