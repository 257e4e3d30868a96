package classify

// Static keyword tables consulted by the classifier. Entries are held
// in folded (lower-case, diacritic-free) form.

// teamNameFragments are fragments of well-known club and country names.
// Matching any fragment routes the query to the team path.
var teamNameFragments = []string{
	"real madrid",
	"barcelona",
	"atletico",
	"manchester",
	"liverpool",
	"chelsea",
	"arsenal",
	"bayern",
	"borussia",
	"juventus",
	"inter",
	"milan",
	"paris saint-germain",
	"psg",
	"ajax",
	"porto",
	"benfica",
	"boca juniors",
	"river plate",
	"flamengo",
	"argentina",
	"brazil",
	"brasil",
	"spain",
	"espana",
	"france",
	"germany",
	"england",
	"italy",
	"portugal",
	"netherlands",
	"uruguay",
	"croatia",
	"morocco",
	"mexico",
	"japan",
}

// squadKeywords mark a query as team-oriented even when the name
// fragment table misses.
var squadKeywords = []string{
	"squad",
	"roster",
	"lineup",
	"line-up",
	"plantilla",
	"team",
	"club",
	"fc ",
	" cf",
	"united",
	"city",
}

// playerKeywords mark a query as a player-profile request.
var playerKeywords = []string{
	"stats",
	"profile",
	"career",
	"goals",
	"assists",
	"player",
	"biography",
}
