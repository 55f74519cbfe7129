// Package template holds the canned content used when no model can answer,
// and the deterministic generator that renders it.
package template

import "github.com/contentsage/contentsage-api/internal/domain/content"

// Placeholder is replaced by the topic in every template.
const Placeholder = "{topic}"

// variant is one named template; lists of variants keep their declaration
// order so the first entry is the documented default.
type variant struct {
	key  string
	text string
}

type variants []variant

func (vs variants) get(key string) (string, bool) {
	for _, v := range vs {
		if v.key == key {
			return v.text, true
		}
	}
	return "", false
}

// pick returns the variant named key, or the first one.
func (vs variants) pick(key string) string {
	if t, ok := vs.get(key); ok {
		return t
	}
	if len(vs) == 0 {
		return ""
	}
	return vs[0].text
}

func (vs variants) keys() []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = v.key
	}
	return out
}

type emailTemplate struct {
	subject string
	body    string
}

// Store is the static template data. The zero value is empty; use Default.
type Store struct {
	product   map[string]variants            // tone -> length
	social    map[string]map[string]variants // platform -> post type -> tone
	hashtags  map[string][]string            // platform -> tags
	baseTags  []string
	article   variants          // style
	blog      map[string]string // summary, outline, intro
	email     map[string]emailTemplate
	landing   variants
	ad        variants
	sales     string
	expansion map[content.Kind]string
}

// Default returns the built-in template set.
func Default() *Store {
	return &Store{
		product:   productTemplates,
		social:    socialTemplates,
		hashtags:  platformHashtags,
		baseTags:  []string{"#innovation", "#quality", "#lifestyle", "#technology"},
		article:   articleTemplates,
		blog:      blogTemplates,
		email:     emailTemplates,
		landing:   landingTemplates,
		ad:        adTemplates,
		sales:     salesTemplate,
		expansion: expansions,
	}
}

var productTemplates = map[string]variants{
	"professional": {
		{"short", "Professional-grade {topic} designed for discerning customers. Features premium build quality and reliable performance."},
		{"medium", "Discover the superior quality of our {topic}. This professionally engineered product combines cutting-edge technology with premium materials to deliver exceptional performance."},
		{"long", "Experience unparalleled excellence with our {topic}. This premium product represents the pinnacle of engineering and design, crafted for those who refuse to compromise on quality."},
	},
	"casual": {
		{"short", "Meet your new favorite {topic}! Super easy to use and packed with cool features."},
		{"medium", "Hey there! Looking for an awesome {topic}? You've found it! This little gem is packed with amazing features that'll make your day so much better."},
		{"long", "Alright, let's talk about this amazing {topic} that's about to become your new best friend! This isn't just another product - it's like having a personal assistant."},
	},
	"luxury": {
		{"short", "Exquisite {topic} crafted for the discerning connoisseur. Premium materials and sophisticated design."},
		{"medium", "Indulge in the ultimate luxury with our exclusive {topic}. Meticulously crafted from the finest materials and designed with sophisticated elegance."},
		{"long", "Experience the epitome of luxury with our exquisite {topic}, a masterpiece of craftsmanship and design that defines sophistication."},
	},
}

var socialTemplates = map[string]map[string]variants{
	"facebook": {
		"promotional": {
			{"friendly", "Check out our amazing {topic}! Perfect for anyone looking to upgrade their experience. What do you think?"},
			{"professional", "Introducing our latest {topic}. Designed with excellence in mind for professionals who demand quality."},
			{"enthusiastic", "OMG! You HAVE to see our new {topic}! This is going to change everything! Who's excited?"},
		},
		"educational": {
			{"friendly", "Did you know {topic} can completely transform your daily routine? Here's what makes it special..."},
			{"professional", "Understanding {topic}: Key insights and benefits for informed decision-making."},
		},
	},
	"instagram": {
		"promotional": {
			{"friendly", "✨ New drop alert! Our {topic} is here and it's absolutely gorgeous! Swipe to see more 📸"},
			{"enthusiastic", "🔥 OBSESSED with our new {topic}! This is everything you've been waiting for! ✨"},
			{"casual", "Sunday vibes with our latest {topic} 🌟 Simple, beautiful, perfect."},
		},
	},
	"twitter": {
		"promotional": {
			{"professional", "Introducing {topic} - engineered for excellence. Available now."},
			{"urgent", "🚨 LIVE NOW: Get {topic} before it's gone! Limited time only."},
			{"casual", "New {topic} just dropped and it's pretty great tbh"},
		},
	},
	"linkedin": {
		"promotional": {
			{"professional", "Proud to announce our latest innovation: {topic}. A testament to our commitment to excellence and innovation in the industry."},
		},
		"educational": {
			{"professional", "Industry insight: How {topic} is reshaping the landscape and what it means for professionals in our field."},
		},
	},
}

var platformHashtags = map[string][]string{
	"facebook":  {"#community", "#share", "#connect"},
	"instagram": {"#insta", "#photooftheday", "#instagood"},
	"twitter":   {"#trending", "#tech", "#business"},
	"linkedin":  {"#professional", "#business", "#leadership"},
}

var articleTemplates = variants{
	{"informative", `# {topic}: A Comprehensive Guide

Understanding {topic} has become increasingly important in today's rapidly evolving landscape. This comprehensive guide explores the key concepts, benefits, and practical applications.

## What is {topic}?

{topic} represents a significant development that impacts various aspects of modern life. By examining the fundamentals, we can better understand its importance and potential applications.

## Key Benefits and Advantages

The implementation of {topic} offers numerous advantages:
- Enhanced efficiency and productivity
- Cost-effective solutions for businesses
- Improved user experience and satisfaction
- Scalable options for different needs

## Practical Implementation

When considering {topic}, it's essential to focus on practical steps that deliver real results. The most effective approach involves careful planning and gradual implementation.

## Future Outlook

As technology continues to advance, {topic} will likely play an even more significant role in shaping our future. Organizations that adapt early will be better positioned for success.

## Conclusion

{topic} represents both an opportunity and a necessity in our current environment. By understanding its potential and implementing it thoughtfully, we can achieve significant improvements in efficiency and outcomes.`},
	{"conversational", `# Let's Talk About {topic}

Hey there! So you're curious about {topic}? That's awesome! This is one of those topics that seems complicated at first, but once you get the hang of it, everything starts to make sense.

## Why Should You Care About {topic}?

Look, I get it. Another thing to learn, right? But here's the thing - {topic} is actually pretty amazing when you see what it can do for you.

Think about it this way: remember when smartphones first came out and some people said "I don't need all that fancy stuff"? Well, {topic} is kind of like that, except it's happening right now.

## Getting Started (It's Easier Than You Think!)

The best part about {topic}? You don't need to be a rocket scientist to understand it. Here's what I wish someone had told me when I started:

Start small. Don't try to master everything at once. Pick one area and focus on that first.

## Real Talk: What Are the Challenges?

I'm not going to sugarcoat this - there are some bumps along the way. But honestly, that's true for anything worth doing, right?

## Your Next Steps

Ready to dive in? Here's what I recommend: take it one step at a time, be patient with yourself, and remember that everyone starts somewhere.`},
	{"professional", `# {topic}: Strategic Considerations and Implementation Framework

In today's competitive business environment, {topic} has emerged as a critical differentiator for organizations seeking sustainable growth and operational excellence.

## Executive Summary

This analysis examines the strategic implications of {topic} and provides a framework for successful implementation across diverse organizational contexts.

## Market Context and Business Drivers

Current market dynamics necessitate a sophisticated approach to {topic}. Organizations that fail to adapt risk falling behind competitors who leverage these capabilities effectively.

## Implementation Framework

Successful deployment of {topic} requires a structured approach encompassing people, processes, and technology.

## Risk Management and Mitigation

Organizations must address potential risks through proactive planning and contingency measures. Critical success factors include stakeholder buy-in, adequate resource allocation, and continuous monitoring.

## Recommendations

Based on current market conditions and best practices, we recommend a phased approach that balances speed-to-market with risk management considerations.`},
}

var blogTemplates = map[string]string{
	"summary": `# {topic} - Key Points Summary

## Overview
{topic} represents a significant development in its field, offering numerous benefits and opportunities for implementation.

## Core Benefits
- Improved efficiency and productivity
- Cost-effective solutions
- Enhanced user experience
- Scalable implementation options

## Implementation Essentials
Getting started with {topic} requires careful planning and a structured approach.

## Expected Outcomes
Organizations and individuals who successfully implement {topic} strategies typically experience improved performance metrics and enhanced satisfaction.

## Next Steps
To maximize the benefits of {topic}, focus on building foundational knowledge and starting with small, manageable projects.`,
	"outline": `# {topic} - Comprehensive Outline

## I. Introduction
- Hook: Engaging opening statement about {topic}
- Background information and context
- Thesis statement and main objectives
- Preview of key points to be covered

## II. Understanding {topic}
- Definition and core concepts
- Historical development and evolution
- Current relevance and importance
- Common misconceptions addressed

## III. Key Benefits and Advantages
- Primary benefits
- Supporting evidence
- Statistical data and research findings
- Case studies and real-world examples

## IV. Implementation Strategy
- Getting started
- Prerequisites and requirements
- Step-by-step process breakdown
- Essential tools and resources

## V. Advanced Considerations
- Scaling strategies
- Integration with existing systems
- Future developments and trends

## VI. Challenges and Solutions
- Common obstacles and barriers
- Practical solutions and workarounds
- Risk mitigation strategies

## VII. Conclusion
- Summary of key takeaways
- Call to action for readers
- Final recommendations and next steps`,
	"intro": `# Introduction: Understanding {topic}

In today's rapidly evolving landscape, {topic} has emerged as a pivotal element that shapes how we approach modern challenges and opportunities. Whether you're a seasoned professional or someone just beginning to explore this field, understanding {topic} is essential for navigating the complexities of our current environment.

## Why {topic} Matters Now

The significance of {topic} extends far beyond theoretical concepts. Recent developments have demonstrated its practical impact across various sectors, influencing everything from daily operations to long-term strategic planning.

## What You'll Discover

This comprehensive exploration will guide you through the essential aspects of {topic}, covering both foundational principles and advanced applications. You'll gain insights into core concepts, practical implementation strategies, real-world applications, and future trends.

## The Journey Ahead

Understanding {topic} is not just about acquiring knowledge. It's about developing the capability to apply these insights effectively in real-world situations. The investment you make in learning about {topic} today will provide dividends in improved outcomes and enhanced efficiency.`,
}

var emailTemplates = map[string]emailTemplate{
	"persuasive": {
		subject: "Don't Miss Out: {topic} Inside!",
		body: `Hi there!

You know that feeling when you discover something that changes everything? That's exactly what {topic} did for thousands of people just like you.

Here's what makes this different:
✅ Proven results in just days
✅ No complicated setup required
✅ Backed by our 30-day guarantee
✅ Join 50,000+ satisfied customers

But here's the thing - this special offer won't last forever.

Ready to transform your experience?

[GET STARTED NOW - 50% OFF]

Don't wait. Your future self will thank you.

Best regards,
The Team

P.S. Still thinking about it? Check out what Sarah M. said: "This completely changed my approach to {topic}. I wish I'd started sooner!"`,
	},
	"urgent": {
		subject: "URGENT: {topic} - 24 Hours Left!",
		body: `FINAL HOURS WARNING!

This is it. In less than 24 hours, our exclusive {topic} offer disappears forever.

🚨 WHAT YOU GET:
→ Complete {topic} system
→ Bonus training modules
→ 1-year support included
→ 60-day money-back guarantee

🚨 WHAT YOU MISS IF YOU WAIT:
→ Paying 3x more later
→ Missing the bonus content
→ Staying stuck with old methods

Right now: $97 (Regular price: $297)
Tomorrow: GONE.

[CLAIM YOUR SPOT NOW]

This isn't a drill. When the timer hits zero, this offer vanishes.

Act now or regret later.

[SECURE YOUR ACCESS - FINAL HOURS]`,
	},
	"friendly": {
		subject: "Hey! Quick question about {topic}",
		body: `Hey friend!

Hope you're having an amazing day!

I wanted to reach out because I know you've been interested in {topic}, and I just had to share this with you.

We've been working on something pretty special, and honestly? I think you're going to love it.

It's all about making {topic} simple, effective, and actually enjoyable. (Yes, really!)

Here's what caught my attention:
• Real results in the first week
• Super easy to get started
• Works even if you're a complete beginner
• Costs less than your monthly coffee budget

Want to take a quick look? No pressure at all - just thought you might find it interesting.

[CHECK IT OUT HERE]

Let me know what you think!

Talk soon,
[Your Name]

P.S. There's a small bonus if you check it out today, but no worries if you can't. It'll still be awesome tomorrow!`,
	},
}

var landingTemplates = variants{
	{"persuasive", `# Finally! The Complete {topic} Solution You've Been Searching For

## Struggling with {topic}? You're Not Alone.

Thousands of people just like you have been frustrated by complicated, expensive, and ineffective solutions. But what if there was a better way?

## Introducing the Revolutionary {topic} System

Our breakthrough approach has helped over 10,000 people achieve remarkable results in just weeks, not months.

### ✅ What You Get:
- Complete step-by-step system
- Video tutorials and guides
- 24/7 support community
- 30-day money-back guarantee
- Exclusive bonus materials worth $297

### ✅ What You'll Achieve:
- Master {topic} in record time
- Save hours every week
- See results from day one
- Gain confidence and expertise

## Don't Just Take Our Word For It

*"This system completely transformed my approach to {topic}. I went from struggling beginner to confident expert in just 30 days!"* - Sarah M.

## Limited Time: Special Launch Price

~~Regular Price: $297~~
**Today Only: $97** (Save $200!)

### 🎁 BONUS: Order in the next 20 minutes and get:
- Advanced techniques course ($97 value)
- Private community access ($47 value)
- 1-on-1 consultation ($197 value)

**Total Value: $638 - Your Price: Just $97**

[GET INSTANT ACCESS NOW - $97]

*30-day money-back guarantee. No questions asked.*`},
	{"urgent", `# 🚨 URGENT: {topic} Solution - Only 24 Hours Left!

## This Offer DISAPPEARS at Midnight Tonight!

You've been thinking about mastering {topic} for months. Maybe even years.

How much longer will you wait?

## What Happens When You Keep Waiting:
❌ Prices go up (next week it's $297)
❌ You miss the bonus materials (worth $341)
❌ You stay frustrated with current methods
❌ Others get ahead while you fall behind

## What Happens When You Act TODAY:
✅ Lock in the lowest price ever ($97 vs $297)
✅ Get $341 in bonus materials FREE
✅ Start seeing results within 48 hours
✅ Join 10,000+ success stories

## ⏰ COUNTDOWN TIMER: [23:47:32]

Every second you wait, you're choosing to stay where you are.

Don't let this moment slip away.

[SECURE YOUR COPY NOW - FINAL HOURS]

*Warning: When this timer hits zero, this offer is gone forever. No exceptions. No extensions.*

## Still Hesitating? Here's What Others Say:

*"I almost didn't buy because I thought I'd wait. Thank God I didn't! This changed everything for me."* - Mike T.

[CLAIM YOUR SPOT BEFORE MIDNIGHT]`},
}

var adTemplates = variants{
	{"persuasive", `Tired of struggling with {topic}?

Our proven system has helped 10,000+ people master {topic} in just weeks.

✓ Easy to follow
✓ Guaranteed results
✓ 30-day money back

Limited time: 50% off

[Start Your Transformation Today]`},
	{"urgent", `LAST CHANCE: {topic} Solution

24 HOURS LEFT!

Don't miss out on the system that's changing lives.

Regular price: $297
TODAY ONLY: $97

[Secure Your Copy Now]

Timer: ⏰ 23:58:42`},
	{"exciting", `🔥 BREAKTHROUGH: {topic} Just Got 10x Easier!

This is HUGE!

The {topic} method everyone's talking about is finally here.

✨ 10,000+ success stories
✨ Works in just days
✨ No prior experience needed

Ready to be next?

[Join the Revolution]`},
}

var salesTemplate = `# The Ultimate {topic} Transformation System

## Your Current Situation (And Why It's Not Your Fault)

You've tried everything. Books, courses, YouTube videos, expensive consultations. Yet you're still struggling with {topic}.

Here's the truth: It's not because you're not smart enough or dedicated enough. It's because you've been using outdated, incomplete methods.

## The Solution That Changes Everything

After 5 years of research and testing with over 10,000 students, we've cracked the code on {topic}.

### The {topic} Master System includes:

**Module 1: Foundation Mastery** ($97 value)
- Core principles that 99% of people get wrong
- The 3-step framework for instant results
- Common mistakes that sabotage success

**Module 2: Advanced Strategies** ($197 value)
- Professional-level techniques
- Case studies from real success stories
- Troubleshooting guide for any situation

**Module 3: Implementation Blueprint** ($147 value)
- Step-by-step action plans
- Templates and checklists
- 90-day roadmap to mastery

**BONUS 1: Private Community Access** ($97 value)
- Connect with 10,000+ members
- Weekly Q&A sessions
- Peer support and accountability

**BONUS 2: 1-on-1 Strategy Session** ($297 value)
- Personal consultation with expert
- Customized action plan
- Direct access for questions

### Total Value: $835
### Your Investment Today: Just $197

## Why This Price Won't Last

We're keeping this introductory price for the first 500 students only. After that, it goes to the full price of $497.

## Our Iron-Clad Guarantee

Try the {topic} Master System for 60 days. If you don't see dramatic improvement, we'll refund every penny. No questions asked.

## What Our Students Say

*"I've spent thousands on {topic} training. This $197 system taught me more in 30 days than everything else combined."* - Jennifer L.

*"Skeptical at first, but the results speak for themselves. Worth every penny and more."* - David R.

## Ready to Transform Your {topic} Skills?

Don't let another day pass wondering "what if."

[ENROLL NOW - $197]

Questions? Email us at support@example.com`

var expansions = map[content.Kind]string{
	content.KindBlog: `## Additional Insights

Further exploration of {topic} reveals additional layers of complexity and opportunity. These advanced considerations provide deeper understanding for those ready to take their knowledge to the next level.

The interconnected nature of modern systems means that {topic} rarely exists in isolation. Understanding these relationships and dependencies is crucial for effective implementation and long-term success.`,
	content.KindProduct: `Every detail of this {topic} has been considered, from the materials chosen to the way it fits into your daily routine. It is built to last, easy to care for, and backed by a team that stands behind its work.`,
	content.KindSocial:  `Tell us how {topic} fits into your day and tag a friend who needs to see this.`,
	content.KindMarketing: `## Why {topic}, Why Now

The people getting the best results with {topic} are the ones who started. Every week you wait is a week of progress you will not get back, and the offer above is the simplest way to begin.`,
}
