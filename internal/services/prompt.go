package services

import (
	"fmt"
)

const (
	FeedbackHeadingStrengths   = "What went well"
	FeedbackHeadingImprovement = "Areas for improvement"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildQuestionPrompt creates the prompt for interview question generation
func (pb *PromptBuilder) BuildQuestionPrompt(resumeText, category string, questionCount int) string {
	return fmt.Sprintf(`You are an expert technical recruiter and interviewer.
Based on the following resume text and the category "%s", generate exactly "%d" insightful interview questions.
Your response MUST be a clean, valid JSON array of strings, and nothing else.
Do not include any introductory text, markdown formatting (such as code fences), or any other text outside of the JSON array.

Resume Text:
---
%s
---`, category, questionCount, resumeText)
}

// BuildFeedbackPrompt creates the prompt for coaching feedback on one answer
func (pb *PromptBuilder) BuildFeedbackPrompt(question, answer string) string {
	return fmt.Sprintf(`You are an expert interview coach. You are given an interview question and the user's answer to it.
Your task is to provide constructive feedback on the answer.
Structure your feedback in two parts, using these exact headings in markdown:
1. A heading named "%s".
2. A heading named "%s".

Be encouraging but also provide specific, actionable advice. Use bullet points within each section.
Start your response directly with the first heading. Do not add any other introductory text.

Question:
---
%s
---
User's Answer:
---
%s
---`, FeedbackHeadingStrengths, FeedbackHeadingImprovement, question, answer)
}
