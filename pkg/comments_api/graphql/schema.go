package graphql

// Schema mirrors the REST surface: list queries plus the createComment and
// uploadAttachment mutations.
const Schema = `
	schema {
		query: Query
		mutation: Mutation
	}

	scalar Time
	scalar Upload

	enum OrderField {
		CREATED_AT
		AUTHOR_NAME
		AUTHOR_EMAIL
		USER_NAME
		EMAIL
	}

	type Attachment {
		id: ID!
		url: String!
		contentType: String
		fileName: String!
		size: Int!
		width: Int
		height: Int
		isImage: Boolean!
		createdAt: Time!
	}

	type Comment {
		id: ID!
		userName: String!
		email: String!
		homePage: String
		parentId: ID
		textRaw: String!
		textHtml: String
		createdAt: Time!
		repliesCount: Int!
		attachments: [Attachment!]!
	}

	type CommentList {
		count: Int!
		results: [Comment!]!
	}

	input CreateCommentInput {
		userName: String
		name: String
		email: String!
		homePage: String
		text: String!
		parentId: ID
		captcha: String!
		captchaKey: String
	}

	type Query {
		comments(page: Int! = 1, pageSize: Int! = 25, orderField: OrderField! = CREATED_AT, desc: Boolean! = true, parentId: ID): CommentList!
	}

	type Mutation {
		createComment(input: CreateCommentInput!): Comment!
		uploadAttachment(commentId: ID!, file: Upload!): Attachment!
	}
`
