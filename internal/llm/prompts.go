package llm

// QuestionsPrompt accepts the question count and the passage.
const QuestionsPrompt = `Based on the following English passage, generate %d reading comprehension questions.
The questions should test the reader's understanding of the main ideas, details, and implications in the text.
Only return the questions as a numbered list, with no additional text.

Passage:
%s`

// AnalyzeAnswerPrompt accepts the passage, the question and the student's answer.
const AnalyzeAnswerPrompt = `As an English language tutor, analyze the following answer to a reading comprehension question.

Passage:
%s

Question:
%s

Student's Answer:
%s

Evaluate the answer on:
1. Content accuracy: is the answer correct based on the passage?
2. Grammar and expression: identify any grammatical errors or awkward expressions.
3. Improvement suggestions: how could the answer be improved?

You must respond ONLY with a valid JSON object, no other text before or after. Do not include any markdown formatting or code blocks.

{
  "content": "assessment of content accuracy",
  "grammar": "assessment of grammar and expression",
  "suggestions": "suggestions for improvement",
  "improvedAnswer": "a model answer for reference",
  "totalScore": 7
}

totalScore is an integer from 0 (completely wrong) to 10 (excellent).`

// DefineWordPrompt accepts the word to define.
const DefineWordPrompt = `Provide a learner-friendly definition of the English word "%s".

You must respond ONLY with a valid JSON object, no other text before or after. Do not include any markdown formatting or code blocks.

{
  "word": "the word",
  "definition": "concise definition in plain English (1-2 sentences)",
  "examples": [
    "example sentence using the word",
    "another example sentence"
  ]
}

Include 2-3 example sentences that show typical usage.`
