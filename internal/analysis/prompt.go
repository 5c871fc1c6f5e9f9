package analysis

// BuildTextPrompt returns the instruction template for the text-mode
// pipeline with the extracted transcript embedded verbatim. Oversized
// transcripts are passed through unmodified; there is no truncation policy.
func BuildTextPrompt(transcript string) string {
	return `You are a financial analyst. Analyze the following earnings call transcript.

Provide the analysis ONLY as a valid JSON object:
{
  "sentiment": "Bullish / Neutral / Bearish",
  "confidence_score": 1-100,
  "summary": "A 2-sentence summary of the call.",
  "positives": ["Top 3 positive takeaways"],
  "negatives": ["Top 3 negative takeaways or risks"],
  "outlook": "Management's guidance or outlook for the future"
}
Do not use markdown. Return raw JSON.

Transcript:
` + transcript
}

// BuildMultimodalPrompt returns the fixed instruction template for the
// native-upload pipeline. The attached document is OCR'd by the model.
func BuildMultimodalPrompt() string {
	return `You are a Senior Equity Research Analyst. Perform a deep-dive analysis of this scanned earnings call.

STEP 1: OCR the document and identify the Key Financial Metrics (Revenue, EBITDA, Net Profit, Order Book/Backlog).
STEP 2: Analyze the 'Tone' of the Management vs. the 'Tone' of the Analysts in the Q&A.
STEP 3: Extract any specific 'Guidance' or 'Outlook' numbers provided for the next fiscal year.

Provide the final analysis ONLY as a valid JSON object:
{
  "sentiment": "Strong Bullish / Bullish / Neutral / Bearish / Strong Bearish",
  "confidence_score": 1-100,
  "summary": "A high-level 3-sentence summary of the business trajectory.",
  "positives": ["At least 3 specific tailwinds with data points if available"],
  "negatives": ["At least 3 specific risks or headwinds mentioned"],
  "outlook": "Detail the management's numerical or strategic guidance for the future",
  "key_metrics": {
      "revenue": "Value if found",
      "ebitda": "Value if found",
      "net_profit": "Value if found",
      "order_book": "Value if found",
      "margin_guidance": "Percentage if found"
  }
}
Do not use markdown. Return raw JSON.`
}
