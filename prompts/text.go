package prompts

import "strings"

func keywordSuggestions(products, posts []string) string {
	return "You are an SEO strategist focused on keywords that bring in paying customers.\n\n" +
		"TASK: Study the products and existing posts below and suggest 10 targeted keywords.\n\n" +
		"PRODUCTS:\n" + strings.Join(products, ", ") + "\n\n" +
		"EXISTING POSTS:\n" + strings.Join(posts, ", ") + "\n\n" +
		"KEYWORD CRITERIA:\n" +
		"• Clear commercial intent\n" +
		"• Low to medium difficulty\n" +
		"• Directly related to the products or services\n" +
		"• Realistic volume of at least 100 searches a month\n" +
		"• Specific phrases, not generic single words\n\n" +
		"RESPONSE FORMAT:\n" +
		"Return ONLY a JSON array of exactly 10 objects shaped like:\n" +
		"{\n" +
		"  \"keyword\": \"exact keyword phrase\",\n" +
		"  \"explanation\": \"why it fits these products\",\n" +
		"  \"search_volume\": \"estimated monthly searches\",\n" +
		"  \"difficulty\": 25,\n" +
		"  \"intent\": \"commercial|informational|navigational\"\n" +
		"}\n\n" +
		"No markdown and no commentary. Output the JSON array only."
}

func freshPost(topic, freshContext string) string {
	return "You are an SEO content strategist writing for business decision-makers.\n\n" +
		"TOPIC: " + topic + "\n\n" +
		"RECENT DATA YOU MUST USE:\n" + freshContext + "\n\n" +
		"RULES:\n" +
		"• Rely only on the facts in the recent data above\n" +
		"• Never invent dates, numbers or claims\n" +
		"• Say so when the data is incomplete\n" +
		"• Mention recent developments where they fit naturally\n\n" +
		"STRUCTURE (4 H2 sections):\n" +
		"• H2 1: Introduction and why it matters now (100-150 words)\n" +
		"• H2 2: First key insight (150-200 words)\n" +
		"• H2 3: Second key insight (150-200 words)\n" +
		"• H2 4: Takeaways and next steps (100-150 words)\n\n" +
		seoRules +
		"• Use bullet points for data and statistics\n" +
		"• Total length: 700-800 words\n\n" +
		"Write the blog post now with H2/H3 headings and no preamble."
}

func evergreenPost(topic string) string {
	return "You are an SEO content strategist writing timeless content for business readers.\n\n" +
		"TOPIC: " + topic + "\n\n" +
		"STRUCTURE (4 H2 sections):\n" +
		"• H2 1: Why this matters (100-150 words)\n" +
		"• H2 2: Core concept or strategy (150-200 words)\n" +
		"• H2 3: Putting it into practice (150-200 words)\n" +
		"• H2 4: Mistakes to avoid (100-150 words)\n\n" +
		seoRules +
		"• Use numbered lists and bullet points\n" +
		"• Give advice that stays true for years\n" +
		"• Do not mention dates, trends or anything time-bound\n" +
		"• Total length: 700-800 words\n\n" +
		"Write the blog post now with H2/H3 headings and no preamble."
}

const seoRules = "SEO REQUIREMENTS:\n" +
	"• Use the primary keyword naturally 2-3 times\n" +
	"• Work in 2-3 long-tail variations\n" +
	"• Keep paragraphs to 2-3 sentences\n" +
	"• Professional tone at a 7th-grade reading level\n"

const blogMetadataSystem = "You are an SEO content strategist and conversion specialist.\n\n" +
	"TASK: Produce a complete, SEO-ready blog post with its metadata.\n\n" +
	"Return exactly 4 JSON fields:\n\n" +
	"1. title: 50-60 characters, includes the primary keyword, promises value without clickbait\n" +
	"2. meta_description: 150-160 characters, includes the keyword and a call to action such as 'Learn how...' or 'Discover...'\n" +
	"3. featured_image_prompt: 50+ words describing a clean, modern, professional image that matches the topic\n" +
	"4. content: the 700-800 word post with H2/H3 headings, keyword use throughout and short paragraphs\n\n" +
	"RESPONSE FORMAT:\n" +
	"Return ONLY a JSON object with the keys 'title', 'meta_description', 'featured_image_prompt' and 'content'.\n" +
	"No markdown, no code fences, no extra text."

func imageEnhancement(basic string) string {
	return "You are a visual designer who writes prompts for DALL-E 3.\n" +
		"Rewrite the basic image description below into a detailed prompt for a publication-quality blog featured image.\n\n" +
		"REQUIREMENTS:\n" +
		"1. Be specific about subject, composition, colors and mood\n" +
		"2. Name a style (professional photography, cinematic, minimalist design)\n" +
		"3. Give a camera angle or perspective\n" +
		"4. Describe the lighting\n" +
		"5. Mention textures and materials\n" +
		"6. Ask for high detail and sharp focus\n" +
		"7. Stay under 150 words\n\n" +
		"BASIC DESCRIPTION:\n" + basic + "\n\n" +
		"Return only the improved prompt text, without quotes or labels."
}

func keywordPlan(businessInfo string) string {
	return "You are an SEO expert. Based on the business below, recommend the 10 best keywords to target.\n\n" +
		"Return ONLY a simple HTML table (no <html>, <head> or <body> tags) with the columns:\n" +
		"- Keyword\n" +
		"- Search Volume\n" +
		"- Difficulty (1-100)\n" +
		"- Intent (Commercial/Informational/Transactional)\n" +
		"- Priority (1-5)\n\n" +
		"Keep it clean enough to paste into WordPress.\n\n" +
		"Business: " + businessInfo
}

func generalContent(request string) string {
	return "You are a business content writer.\n\n" +
		"REQUEST: " + request + "\n\n" +
		"GUIDELINES:\n" +
		"• Write for professionals and decision-makers\n" +
		"• Use plain, direct language\n" +
		"• Keep paragraphs to 2-3 sentences\n" +
		"• Use concrete examples where they help\n" +
		"• Skip jargon and filler\n\n" +
		"Begin writing:"
}

func outline(topic, freshContext string) string {
	var recent string
	if freshContext != "" {
		recent = "RECENT DATA (use where relevant):\n" + freshContext + "\n\n"
	}
	return "You are a content strategist who plans SEO article structure.\n\n" +
		"TOPIC: " + topic + "\n\n" +
		recent +
		"TASK: Write a detailed outline with a clear heading hierarchy:\n" +
		"4 H2 sections (overview, core concept, implementation, takeaway), the first three with two H3 subsections each.\n\n" +
		"REQUIREMENTS:\n" +
		"• Put the primary keyword in at least 2 H2 headings\n" +
		"• Make every section specific and actionable\n" +
		"• Write for business decision-makers\n\n" +
		"Use ## for H2 and ### for H3."
}

func seoMeta(topic string) string {
	return "You are an SEO copywriter.\n\n" +
		"TOPIC: " + topic + "\n\n" +
		"Write an SEO title (50-60 characters, includes the keyword, no clickbait) and a meta description " +
		"(150-160 characters, includes the keyword and a clear call to action).\n\n" +
		"Return ONLY this JSON:\n" +
		"{\n" +
		"  \"title\": \"...\",\n" +
		"  \"meta_description\": \"...\"\n" +
		"}"
}
