package engine

// LLM prompt templates. Data only, no logic.

// SummarizerDescription is the system prompt of the video summarization agent.
const SummarizerDescription = "You are a YouTube summarizer for students. " +
	"Extract captions & metadata from the video, then create a clear, concise, and easy-to-read summary. " +
	"Focus on key points, definitions, and important facts useful for exam preparation."

// SummarizerInstruction is the agent task. Args: mode (lowercased), link.
const SummarizerInstruction = "Create %s from the YouTube video this the link %s. " +
	"Include title, structured topics/subtopics,with short definition key points, and 2-5 exam questions at the end."

// VideoToolBlock frames the output of the video data tool for the agent.
// Args: tool output.
const VideoToolBlock = `

Video data (from the YouTube captions & metadata tool):
%s`

// NotesSystemPrompt is the role of the note composer.
const NotesSystemPrompt = "You are an expert note-taking assistant for students."

// NotesUserPrompt asks for study notes. Args: summary.
const NotesUserPrompt = `
Create detailed study notes from the following summary:
- Include structured topics and subtopics
- Include key points under each subtopic
- Add 2-5 likely exam questions at the end
- Use clear, concise, student-friendly language

Summary:
%s
`
