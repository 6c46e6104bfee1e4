package page

import (
	"html/template"
	"time"

	"github.com/Zachkp/portfolio/internal/content"
	"github.com/Zachkp/portfolio/internal/reveal"
)

// Section names, in page order.
const (
	SectionHero     = "hero"
	SectionAbout    = "about"
	SectionSkills   = "skills"
	SectionProjects = "projects"
	SectionContact  = "contact"
	SectionFooter   = "footer"
)

// Order is the fixed order sections appear in.
var Order = []string{
	SectionHero,
	SectionAbout,
	SectionSkills,
	SectionProjects,
	SectionContact,
	SectionFooter,
}

const visibleTags = 3

var (
	heroStagger      = reveal.Stagger{Base: 300 * time.Millisecond, Step: 150 * time.Millisecond}
	educationStagger = reveal.Stagger{Base: 500 * time.Millisecond, Step: 100 * time.Millisecond}
	categoryStagger  = reveal.Stagger{Step: 100 * time.Millisecond}
	barStagger       = reveal.Stagger{Base: 500 * time.Millisecond, Step: 100 * time.Millisecond}
	softStagger      = reveal.Stagger{Base: 500 * time.Millisecond, Step: 50 * time.Millisecond}
	cardStagger      = reveal.Stagger{Step: 100 * time.Millisecond}
	channelStagger   = reveal.Stagger{Base: 300 * time.Millisecond, Step: 100 * time.Millisecond}
)

// Regions lists every region the page observes, with its threshold.
// The hero is on screen at load, so it reveals on any report.
func Regions(t *content.Tables, threshold float64) map[reveal.Region]float64 {
	out := map[reveal.Region]float64{
		reveal.Key(SectionHero):                0,
		reveal.Key(SectionAbout, "header"):     threshold,
		reveal.Key(SectionAbout, "journey"):    threshold,
		reveal.Key(SectionAbout, "stats"):      threshold,
		reveal.Key(SectionSkills, "header"):    threshold,
		reveal.Key(SectionSkills, "soft"):      threshold,
		reveal.Key(SectionProjects, "header"):  threshold,
		reveal.Key(SectionContact, "header"):   threshold,
		reveal.Key(SectionContact, "channels"): threshold,
		reveal.Key(SectionContact, "form"):     threshold,
		reveal.Key(SectionFooter):              threshold,
	}
	for i := range t.About.Education {
		out[reveal.Indexed(SectionAbout, "education", i)] = threshold
	}
	for i := range t.Skills.Categories {
		out[reveal.Indexed(SectionSkills, "category", i)] = threshold
	}
	for i := range t.Projects {
		out[reveal.Indexed(SectionProjects, "card", i)] = threshold
	}
	return out
}

// Reveal is the reveal state of one region as the templates see it.
type Reveal struct {
	Region    reveal.Region
	Threshold float64
	Entered   bool
	Delay     time.Duration
}

func (r Reveal) DelayMS() int64 { return r.Delay.Milliseconds() }

func revealOf(c *reveal.Controller, region reveal.Region, delay time.Duration) Reveal {
	r := Reveal{Region: region, Delay: delay}
	if s := c.State(region); s != nil {
		r.Threshold = s.Threshold
		r.Entered = s.Entered()
	}
	return r
}

type HeroView struct {
	Reveal
	Profile content.Profile
	// Item delays for greeting, name, role, summary, facts, actions, social.
	Delays []time.Duration
	Social []content.SocialLink
}

func Hero(t *content.Tables, c *reveal.Controller) HeroView {
	delays := make([]time.Duration, 7)
	for i := range delays {
		delays[i] = heroStagger.At(i)
	}
	return HeroView{
		Reveal:  revealOf(c, reveal.Key(SectionHero), 0),
		Profile: t.Profile,
		Delays:  delays,
		Social:  t.Social,
	}
}

type EducationView struct {
	Reveal
	content.EducationRecord
}

type AboutView struct {
	Header    Reveal
	Journey   Reveal
	Stats     Reveal
	Paragraph []template.HTML
	Interests []content.InterestTag
	Education []EducationView
	StatItems []content.Stat
}

func About(t *content.Tables, c *reveal.Controller) AboutView {
	v := AboutView{
		Header:    revealOf(c, reveal.Key(SectionAbout, "header"), 0),
		Journey:   revealOf(c, reveal.Key(SectionAbout, "journey"), 200*time.Millisecond),
		Stats:     revealOf(c, reveal.Key(SectionAbout, "stats"), 700*time.Millisecond),
		Interests: t.About.Interests,
		StatItems: t.About.Stats,
	}
	for _, p := range t.About.Journey {
		v.Paragraph = append(v.Paragraph, content.Markdown(p))
	}
	for i, e := range t.About.Education {
		v.Education = append(v.Education, EducationView{
			Reveal:          revealOf(c, reveal.Indexed(SectionAbout, "education", i), educationStagger.At(i)),
			EducationRecord: e,
		})
	}
	return v
}

// BarView is one skill progress bar. Width stays 0 until the category is
// revealed, then equals the level; the client animates that change once.
type BarView struct {
	Name  string
	Level int
	Width int
	Delay time.Duration
}

func (b BarView) DelayMS() int64 { return b.Delay.Milliseconds() }

type CategoryView struct {
	Reveal
	Title string
	Bars  []BarView
}

type ChipView struct {
	Label string
	Delay time.Duration
}

func (c ChipView) DelayMS() int64 { return c.Delay.Milliseconds() }

type SkillsView struct {
	Header     Reveal
	Categories []CategoryView
	Soft       Reveal
	Chips      []ChipView
}

func Skills(t *content.Tables, c *reveal.Controller) SkillsView {
	v := SkillsView{
		Header: revealOf(c, reveal.Key(SectionSkills, "header"), 0),
		Soft:   revealOf(c, reveal.Key(SectionSkills, "soft"), 400*time.Millisecond),
	}
	for i, cat := range t.Skills.Categories {
		cv := CategoryView{
			Reveal: revealOf(c, reveal.Indexed(SectionSkills, "category", i), categoryStagger.At(i)),
			Title:  cat.Title,
		}
		bars := barStagger.Then(categoryStagger.At(i))
		for j, s := range cat.Skills {
			bar := BarView{Name: s.Name, Level: s.Level, Delay: bars.At(j)}
			if cv.Entered {
				bar.Width = s.Level
			}
			cv.Bars = append(cv.Bars, bar)
		}
		v.Categories = append(v.Categories, cv)
	}
	for i, s := range t.Skills.Soft {
		v.Chips = append(v.Chips, ChipView{Label: s, Delay: softStagger.At(i)})
	}
	return v
}

type CardView struct {
	Reveal
	Slug        string
	Title       string
	Subtitle    string
	Description string
	Image       string
	Stats       []content.Stat
	Tags        []string
	MoreTags    int
	Link        string
}

type ProjectsView struct {
	Header Reveal
	Cards  []CardView
}

func Projects(t *content.Tables, c *reveal.Controller) ProjectsView {
	v := ProjectsView{Header: revealOf(c, reveal.Key(SectionProjects, "header"), 0)}
	for i, p := range t.Projects {
		tags := p.Tags
		more := 0
		if len(tags) > visibleTags {
			more = len(tags) - visibleTags
			tags = tags[:visibleTags]
		}
		v.Cards = append(v.Cards, CardView{
			Reveal:      revealOf(c, reveal.Indexed(SectionProjects, "card", i), cardStagger.At(i)),
			Slug:        p.Slug,
			Title:       p.Title,
			Subtitle:    p.Subtitle,
			Description: p.Description,
			Image:       p.Image,
			Stats:       p.Stats,
			Tags:        tags,
			MoreTags:    more,
			Link:        p.Link,
		})
	}
	return v
}

// OverlayView is the project detail overlay. Project is nil when closed.
type OverlayView struct {
	Project     *content.ProjectRecord
	Description template.HTML
}

func (o OverlayView) Open() bool { return o.Project != nil }

func Overlay(p *content.ProjectRecord) OverlayView {
	if p == nil {
		return OverlayView{}
	}
	return OverlayView{Project: p, Description: content.Markdown(p.Description)}
}

type ChannelView struct {
	content.ContactChannel
	Delay time.Duration
}

func (c ChannelView) DelayMS() int64 { return c.Delay.Milliseconds() }

type ContactView struct {
	Header   Reveal
	Intro    string
	Channels Reveal
	Items    []ChannelView
	Social   []content.SocialLink
	Form     Reveal
	Draft    FormView
}

func Contact(t *content.Tables, c *reveal.Controller, form FormView) ContactView {
	v := ContactView{
		Header:   revealOf(c, reveal.Key(SectionContact, "header"), 0),
		Intro:    t.Contact.Intro,
		Channels: revealOf(c, reveal.Key(SectionContact, "channels"), 200*time.Millisecond),
		Social:   t.Social,
		Form:     revealOf(c, reveal.Key(SectionContact, "form"), 400*time.Millisecond),
		Draft:    form,
	}
	for i, ch := range t.Contact.Channels {
		v.Items = append(v.Items, ChannelView{ContactChannel: ch, Delay: channelStagger.At(i)})
	}
	return v
}

type FooterView struct {
	Reveal
	Year int
	Name string
}

func Footer(t *content.Tables, c *reveal.Controller, now time.Time) FooterView {
	return FooterView{
		Reveal: revealOf(c, reveal.Key(SectionFooter), 0),
		Year:   now.Year(),
		Name:   t.Profile.Name,
	}
}
