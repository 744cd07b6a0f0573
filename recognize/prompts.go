package recognize

// nerSystemPrompt is the system prompt for entity recognition.
const nerSystemPrompt = `You are a named-entity recognizer. Extract entities from text and report each occurrence with character offsets.

Always respond with valid JSON. Do not include any text outside the JSON array.`

// nerUserPrompt is the user prompt template for entity recognition. The %s
// placeholder is replaced with the text to analyze.
const nerUserPrompt = `Extract named entities from the text below.

For each entity occurrence report:
- "text": the entity exactly as it appears
- "label": a short lowercase tag such as "person", "organization", "place", "date", "product"
- "start": 0-based character offset where the occurrence begins
- "end": character offset just past the occurrence
- "confidence": your confidence from 0.0 to 1.0

Report each occurrence separately. If there are no entities, respond with [].

Text to analyze:
---
%s
---

Respond with a JSON array only:
[{"text":"...","label":"...","start":0,"end":0,"confidence":0.0}]`
