package ai

import (
	"encoding/json"
	"fmt"
	"strings"
)

func gradingSystemPrompt(input GradingInput) string {
	builder := strings.Builder{}
	builder.WriteString("You are a strict JSON data generator for an AI Teaching Assistant.\n\n")
	builder.WriteString("TASK: analyze the student submission based on the instructions")
	if len(input.Rubric) > 0 {
		builder.WriteString(" and rubric")
	}
	builder.WriteString(".\n\nINPUT DATA:\n")
	builder.WriteString("- Instructions: " + input.Instructions + "\n")
	if input.AssignmentTitle != "" {
		builder.WriteString("- Assignment: " + input.AssignmentTitle + "\n")
	}
	if len(input.Rubric) > 0 {
		rubricJSON, _ := json.Marshal(input.Rubric)
		builder.WriteString("- RUBRIC: " + string(rubricJSON) + "\n")
	}
	fmt.Fprintf(&builder, "- AI Score: %d%% (If > 60%%, FLAG this in weaknesses)\n", input.AuthenticityScore)
	fmt.Fprintf(&builder, "- Max Points: %d\n\n", input.MaxPoints)

	builder.WriteString(`OUTPUT FORMAT:
Return a single valid JSON object. Do not output markdown, explanations, or any text outside the JSON.

JSON SCHEMA:
{
    "strengths": ["Bulleted point (7-12 words)", "Bulleted point (7-12 words)"],
    "weaknesses": ["Bulleted point (7-12 words)", "Bulleted point (7-12 words)"],
    "rubric_breakdown": [
        {
            "criterion": "Exact Criterion Name from Rubric",
            "performance_level": "Exceptional | Very Good | Good | Average | Poor",
            "score": 0,
            "max": 0,
            "reason": "Brief explanation (4-6 words)"
        }
    ],
    "score": 0
}

GRADING LOGIC (DETERMINISTIC MULTIPLIERS):
To ensure consistency, you MUST use these specific multipliers for scoring. Do not guess the score.

| Level | Criteria | Multiplier |
| :--- | :--- | :--- |
| Exceptional | Outstanding; exceeds all requirements | 0.85 |
| Very Good | Strong; very few minor errors | 0.65 |
| Good | Satisfactory; meets most requirements | 0.55 |
| Average | Basic; significant gaps | 0.45 |
| Poor | Fail; does not meet minimums | 0.20 |

CONSTRAINTS:
- Provide at least 2 distinct Strengths and 2 distinct Weaknesses.
- Bullets must be short (7-12 words).
- "rubric_breakdown" MUST include EVERY criterion from the input RUBRIC.
- For EACH criterion: select the performance_level, look up its multiplier, and set score = ROUND(max * multiplier).
- "reason" must be very short (4-6 words).
- IF AI Score > 60%: Must add "(AI FLAG: CONTENT SEEMS ARTIFICIAL)" as a weakness.
- Weaknesses must NOT contradict Strengths.
- CALCULATE the final "score" by summing all criterion scores.
- Strict JSON syntax.`)

	return builder.String()
}

func rubricSystemPrompt(input RubricDraftInput) string {
	builder := strings.Builder{}
	builder.WriteString("You are an expert curriculum developer.\n")
	builder.WriteString("TASK: Propose grading criteria for this assignment.\n\n")
	builder.WriteString("CONTEXT:\n")
	builder.WriteString("- Title: \"" + input.Title + "\"\n")
	builder.WriteString("- Instructions/Description: \"" + input.Description + "\"\n")
	fmt.Fprintf(&builder, "- Max Points: %d\n\n", input.MaxPoints)
	builder.WriteString(`RULES:
1. Criteria must be derived STRICTLY from the provided Instructions.
2. Rate each criterion's importance as an integer from 1 (minor) to 5 (essential). Do NOT assign point values; points are computed from importance.
3. Best suited for essays/assignments < 2000 words.
4. Output strictly valid JSON only. NO markdown blocks.

JSON STRUCTURE:
[
    {
        "criterion": "Name of criterion",
        "importance": 4,
        "description": "What this criterion assesses..."
    }
]`)

	return builder.String()
}

func summarySystemPrompt(focus string) string {
	builder := strings.Builder{}
	builder.WriteString("You are an expert educational content summarizer.\n")
	builder.WriteString("TASK: Summarize the provided text into 3-5 concise bullet points.")
	if focus != "" {
		builder.WriteString("\n\nUSER FOCUS: " + focus + "\nPrioritize information related to the user's focus area.")
	}
	builder.WriteString("\n\nOUTPUT FORMAT:\nReturn a single JSON object with a \"points\" array of strings.\n")
	builder.WriteString(`Example: { "points": ["Point 1", "Point 2", "Point 3"] }`)
	return builder.String()
}
