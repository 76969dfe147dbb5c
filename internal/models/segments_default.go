package models

// defaultSegments describes the five clusters of the shipped model.
var defaultSegments = []Segment{
	{
		ID:    0,
		Label: "Established customer",
		Description: "These customers represent a large number of the customer base and prefer electronics. " +
			"They are loyal and financially stable, however their spending is not as high, and not a priority. " +
			"They could be targeted when doing loyalty deals, as well as offers on expensive electronics.",
	},
	{
		ID:    1,
		Label: "High-earning customer",
		Description: "These customers have very high income, however they are not spending their money at this shop, " +
			"they also prefer electronics. They are a prime target for high-end marketing campaigns, " +
			"that include exclusive products which are intended to make them spend more.",
	},
	{
		ID:    2,
		Label: "Young high-spender",
		Description: "These customers are young, with a low income however spend a lot at the store, " +
			"primarily shopping luxury items. This group is highly influenced by trends and they are willing to spend " +
			"a significant portion of their income. They could be targeted for offers specific to new products " +
			"and limited-time products.",
	},
	{
		ID:    3,
		Label: "Fashionable spender",
		Description: "These are the store's most valuable customers as they have a high income and also spend a lot " +
			"at the shop, again primarily focusing on luxury items. Marketing here should focus on special services " +
			"and various offers to maintain their loyalty and high spending habits.",
	},
	{
		ID:    4,
		Label: "Budget spenders",
		Description: "These customers are young with a decent income, however they are careful when spending. " +
			"They prefer fashion items. Marketing efforts should be made to encourage more spending through offers " +
			"and promotions as there is a lot of opportunity here.",
	},
}

// DefaultCatalog returns the built-in catalog for the shipped five-cluster model.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(defaultSegments)
	if err != nil {
		panic(err)
	}
	return c
}
