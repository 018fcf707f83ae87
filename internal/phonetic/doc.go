// Package phonetic fetches IPA transcriptions of vocabulary words using
// OpenAI's GPT models. The Anki export uses them as card notes.
package phonetic
