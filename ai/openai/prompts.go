package openai

const extractionResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "companies": {
      "type": "array",
      "items": {"type": "string"}
    },
    "persons": {
      "type": "array",
      "items": {"type": "string"}
    },
    "events": {
      "type": "array",
      "items": {"type": "string"}
    }
  },
  "required": ["companies", "persons", "events"],
  "additionalProperties": false
}`

const extractionPrompt = `You analyze fragments of news articles and regulatory documents from the
Colombian energy sector. The text may be in Spanish or English. Extract every
company, person and event the fragment mentions and return them as JSON.

Output ONLY valid JSON which complies with the schema given below. Do not include any preamble, explanation,
greeting, or acknowledgment. Start your response directly with the opening brace { and end with the closing
brace }. Your output must exactly follow this schema:

` + extractionResponseSchema + `

Rules:
- "companies": companies, state agencies, regulators and other organizations, using the name as written in the text.
- "persons": full names of individual people. Do not include job titles alone.
- "events": short phrases describing concrete happenings (resolutions issued, auctions, sanctions, agreements, appointments).
- Include only entities explicitly mentioned in the fragment. Do not hallucinate.
- Do not translate names; keep the original language and casing.
- A category with no entities must be an empty array, never omitted.
- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text outside the object.

Example:
Input: "La CREG expidió la resolución 101-028. El presidente de Ecopetrol, Ricardo Roa, celebró la decisión."
Output:
{
  "companies": ["CREG", "Ecopetrol"],
  "persons": ["Ricardo Roa"],
  "events": ["Expedición de la resolución 101-028"]
}`

const consolidationResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "summary": {"type": "string"},
    "companies": {
      "type": "array",
      "items": {"type": "string"}
    },
    "persons": {
      "type": "array",
      "items": {"type": "string"}
    },
    "events": {
      "type": "array",
      "items": {"type": "string"}
    }
  },
  "required": ["summary", "companies", "persons", "events"],
  "additionalProperties": false
}`

const consolidationPrompt = `You receive entity lists collected fragment by fragment from a single news or
regulatory document. The lists contain duplicates, near-duplicates and noise.
Clean them up and summarize the document, returning JSON.

Output ONLY valid JSON which complies with the schema given below. Do not include any preamble, explanation,
greeting, or acknowledgment. Start your response directly with the opening brace { and end with the closing
brace }. Your output must exactly follow this schema:

` + consolidationResponseSchema + `

Rules:
- "summary": 2-3 sentences describing what the document is about, in the document's language.
- Merge entries that name the same entity ("Ecopetrol S.A." and "Ecopetrol" become one entry, keeping the most complete form).
- Remove entries that are not really entities of their category (fragments of sentences, generic words, categories misfiled).
- Never invent entities that are not present in the input lists.
- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text outside the object.`
