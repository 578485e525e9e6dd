// Package prompts holds the fixed instruction templates sent to the
// text-generation oracle. The wording is load-bearing: the merge and
// compaction flows depend on the oracle returning bare document content,
// so every template spells that out explicitly.
package prompts

import "fmt"

// automationPreamble is prepended to every oracle invocation. Interactive
// assistants tend to answer with meta-commentary or permission requests;
// the preamble tells them they are running unattended.
const automationPreamble = `<system>
You are a document processing assistant. Your role is to process text content and return the requested output directly without any meta-commentary, explanations, or requests for permissions.

When asked to update or merge documents, return only the final document content. Do not include phrases like "I need permissions", "Would you like me to", or any conversational responses.

You are running in an automated script that expects only the processed content as output.
</system>`

// WithPreamble wraps a task prompt in the automation preamble.
func WithPreamble(prompt string) string {
	return automationPreamble + "\n\n" + prompt
}

// Analysis builds the style-analysis prompt for one batch of formatted
// comments.
func Analysis(batchText string) string {
	return fmt.Sprintf(`Analyze these GitHub comments for writing style patterns. Focus on:
1. Communication tone and approach
2. Technical language preferences
3. Problem-solving methodology
4. Feedback and collaboration style
5. Common phrases or expressions
6. Code review patterns

Extract concise style insights that would help an AI assistant write similar comments.

Comments to analyze:
%s

Provide specific, actionable style guidelines based on these examples.`, batchText)
}

// Merge builds the guided-merge prompt: rewrite the whole document,
// integrating the new analysis without losing existing content.
func Merge(existing, analysis string) string {
	return fmt.Sprintf(`You are a content processor updating a GitHub comment style guide. You must output the complete updated document content directly.

TASK: Return the complete updated style document content (just the content, no explanations or permission requests).

REQUIREMENTS:
1. Make the document MORE DETAILED than the existing one
2. PRESERVE all existing insights, examples, and specific details
3. ADD new insights from the new analysis to expand sections
4. EXPAND existing points with additional examples and specifics
5. The document should GROW in detail and comprehensiveness, never shrink
6. Do NOT remove or simplify existing content - only enhance and expand it

EXISTING STYLE DOCUMENT:
%s

NEW ANALYSIS TO INTEGRATE:
%s

OUTPUT ONLY the complete updated style document content (no meta-commentary, no permission requests, just the document content).`, existing, analysis)
}

// Compaction builds the size-reduction prompt. floor and ceiling give the
// target line band the compacted document should land in.
func Compaction(document string, floor, ceiling int) string {
	return fmt.Sprintf(`The following style document has grown too large. Please compact it while preserving all unique insights and patterns.

Goals:
1. Merge redundant or similar style points
2. Consolidate examples while keeping the most representative ones
3. Maintain the structure and readability
4. Preserve all unique insights and edge cases
5. Target around %d-%d lines to allow for continued growth

Current style document:
%s

Please provide a compacted version that maintains all the essential style information.`, floor, ceiling, document)
}
