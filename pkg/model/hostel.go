package model

type Hostel struct {
	ID       int    `json:"id" bson:"id"`
	Name     string `json:"name" bson:"name"`
	Location string `json:"location" bson:"location"`
	OwnerID  int    `json:"owner_id" bson:"owner_id"`
}

type HostelCreate struct {
	Name     string `json:"name" validate:"required,min=1,max=200"`
	Location string `json:"location" validate:"required,min=1,max=200"`
}
