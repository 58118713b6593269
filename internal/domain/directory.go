package domain

// City and Customer are standalone records with no relationships.

type City struct {
	ID   int64
	Name string
}

type Customer struct {
	ID    int64
	Name  string
	Email string
	Phone string
	Zip   string
}
