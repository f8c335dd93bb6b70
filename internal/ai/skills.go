package ai

import (
	"fmt"
	"strings"

	"github.com/hoanghai1803/contentformer/internal/models"
)

const ideasPromptIntro = `You are an expert content strategist for an AI consulting company. Based on this transcript & being open to adding more to it, what are some ideas for videos that you can come up with?`

const ideasFormatContract = `For each idea, provide:
1. A catchy title
2. A brief description of what the video would cover

IMPORTANT: Format your response STRICTLY as a valid JSON array of objects with 'title' and 'description' fields. Do not include any explanations, markdown formatting, or additional text outside of the JSON array.
Example format:
[
  {
    "title": "Example Title 1",
    "description": "Example description 1"
  },
  {
    "title": "Example Title 2",
    "description": "Example description 2"
  }
]`

const scriptStructure = `Create a well-structured blog-style script that includes:
1. An attention-grabbing introduction
2. Clear sections with headers
3. Engaging talking points in first person perspective
4. Personal anecdotes or examples where appropriate

Format your response as a well-structured blog post that could be read as a script. Use a conversational tone throughout.`

const scriptPromptIntro = `Convert this transcript into a blog-style video script, keeping the proper hook & tone, refining the examples and concepts to make them clearer. The script should be written in first person and feel personal.`

const regeneratePromptIntro = `Create a completely new blog-style video script based on the content idea and transcript. Follow the specific instructions provided.`

const refinePromptIntro = `Refine this video script based on the following instructions. Maintain the original structure and tone where appropriate, but implement the requested changes.`

const refinePromptOutro = `Please provide the complete refined script. Keep what works well from the original and modify only what needs to be changed according to the instructions.`

const linkedinPromptIntro = `You are a social media expert specializing in LinkedIn content for an AI consulting company. Create an engaging LinkedIn post to promote a video with the following script.`

const linkedinRequirements = `Create a LinkedIn post that:
1. Has an attention-grabbing first line
2. Highlights the key value points from the video
3. Includes relevant hashtags related to AI consulting and technology
4. Has a clear call-to-action

Format your response as a ready-to-post LinkedIn update. Do not include any explanations or additional text outside the post.`

// IdeasPrompt builds the prompt asking for video ideas as a strict JSON
// array. The instructions line is only included when instructions is not
// blank.
func IdeasPrompt(transcript, instructions string) string {
	var b strings.Builder
	b.WriteString(ideasPromptIntro)
	b.WriteString("\n\nTRANSCRIPT:\n")
	b.WriteString(transcript)
	b.WriteString("\n\n")
	writeAdditionalInstructions(&b, instructions)
	b.WriteString(ideasFormatContract)
	b.WriteString("\n")
	return b.String()
}

// ScriptPrompt builds the prompt turning a transcript into a first-person,
// blog-style script for idea.
func ScriptPrompt(idea models.ContentIdea, transcript, instructions string) string {
	var b strings.Builder
	b.WriteString(scriptPromptIntro)
	b.WriteString("\n\n")
	writeIdea(&b, idea)
	b.WriteString("ORIGINAL TRANSCRIPT:\n")
	b.WriteString(transcript)
	b.WriteString("\n\n")
	writeAdditionalInstructions(&b, instructions)
	b.WriteString(scriptStructure)
	b.WriteString("\n")
	return b.String()
}

// RegenerateScriptPrompt is ScriptPrompt for a fresh take, where the
// instructions are mandatory.
func RegenerateScriptPrompt(idea models.ContentIdea, transcript, instructions string) string {
	var b strings.Builder
	b.WriteString(regeneratePromptIntro)
	b.WriteString("\n\n")
	writeIdea(&b, idea)
	b.WriteString("ORIGINAL TRANSCRIPT:\n")
	b.WriteString(transcript)
	b.WriteString("\n\nSPECIFIC INSTRUCTIONS:\n")
	b.WriteString(instructions)
	b.WriteString("\n\n")
	b.WriteString(scriptStructure)
	b.WriteString("\n")
	return b.String()
}

// RefineScriptPrompt builds the prompt asking for a complete replacement of
// script's body with the given changes applied.
func RefineScriptPrompt(script models.VideoScript, instructions string) string {
	var b strings.Builder
	b.WriteString(refinePromptIntro)
	b.WriteString("\n\nORIGINAL SCRIPT:\n")
	b.WriteString(script.Script)
	b.WriteString("\n\nREFINEMENT INSTRUCTIONS:\n")
	b.WriteString(instructions)
	b.WriteString("\n\n")
	b.WriteString(refinePromptOutro)
	b.WriteString("\n")
	return b.String()
}

// LinkedInPostPrompt builds the prompt for a promotional post about script.
func LinkedInPostPrompt(script models.VideoScript) string {
	var b strings.Builder
	b.WriteString(linkedinPromptIntro)
	fmt.Fprintf(&b, "\n\nVIDEO TITLE: %s\n\n", script.Title)
	b.WriteString("VIDEO SCRIPT:\n")
	b.WriteString(script.Script)
	b.WriteString("\n\n")
	b.WriteString(linkedinRequirements)
	b.WriteString("\n")
	return b.String()
}

func writeIdea(b *strings.Builder, idea models.ContentIdea) {
	b.WriteString("CONTENT IDEA:\n")
	fmt.Fprintf(b, "Title: %s\n", idea.Title)
	fmt.Fprintf(b, "Description: %s\n\n", idea.Description)
}

func writeAdditionalInstructions(b *strings.Builder, instructions string) {
	if strings.TrimSpace(instructions) == "" {
		return
	}
	fmt.Fprintf(b, "ADDITIONAL INSTRUCTIONS: %s\n\n", instructions)
}
